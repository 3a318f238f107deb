// Package services implements the driving port interfaces.
// Services contain the resolution logic that turns instrument sessions into
// runs, datasets and asset links, and orchestrate calls to driven ports.
//
// Services hold no per-request state and are safe for concurrent use.
package services
