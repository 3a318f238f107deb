package domain

// InstrumentSession is a named group of runs on one instrument.
type InstrumentSession struct {
	Name string
}

// Run is one experiment execution, resolved from a session search.
// It owns the container node it was built from.
type Run struct {
	Node Node

	// ScanNumber is the scan_id of the run's start document, if any.
	ScanNumber *int64

	// PlanName is the plan_name of the run's start document, if any.
	PlanName string
}

// ID returns the remote id of the run.
func (r *Run) ID() string {
	return r.Node.ID
}

// DatasetKey identifies a dataset by the ids of its run and stream.
type DatasetKey struct {
	Run     string
	Stream  string
	Dataset string
}

// RunData is a dataset of a run. The only implementations are
// *ArrayData and *TableData.
type RunData interface {
	// DatasetKey returns the identifying ids of the dataset.
	DatasetKey() DatasetKey

	isRunData()
}

// ArrayData is an array dataset of a run.
type ArrayData struct {
	Key   DatasetKey
	Attrs *ArrayAttributes
}

// TableData is a tabular dataset of a run.
type TableData struct {
	Key   DatasetKey
	Attrs *TableAttributes
}

func (a *ArrayData) DatasetKey() DatasetKey { return a.Key }
func (t *TableData) DatasetKey() DatasetKey { return t.Key }

func (*ArrayData) isRunData() {}
func (*TableData) isRunData() {}

// Name returns the dataset id.
func (a *ArrayData) Name() string {
	return a.Key.Dataset
}

// Files returns every asset across the dataset's data sources in
// encounter order. Missing data sources count as empty.
func (a *ArrayData) Files() []AssetLink {
	if a.Attrs == nil {
		return nil
	}
	var links []AssetLink
	for _, source := range a.Attrs.DataSources {
		for _, asset := range source.Assets {
			links = append(links, AssetLink{Dataset: a.Key, Asset: asset})
		}
	}
	return links
}

// Name returns the dataset id.
func (t *TableData) Name() string {
	return t.Key.Dataset
}

// Columns returns the column names declared by the table structure.
func (t *TableData) Columns() []string {
	if t.Attrs == nil {
		return nil
	}
	return t.Attrs.Structure.Columns
}

// Path returns the canonical remote path of the table.
func (t *TableData) Path() string {
	if t.Attrs == nil {
		return t.Key.Dataset
	}
	return CanonicalPath(t.Attrs.Ancestors, t.Key.Dataset)
}
