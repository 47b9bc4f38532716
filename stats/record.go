package stats

// Classification is the verdict of the cutoff classifier
// for a single scale tier.
type Classification string

const (

	// Unclassified is the zero value, i.e. the classifier has not
	// seen the record yet.
	Unclassified Classification = ""

	// Efficient means that centralized processing is still fine
	// for the tier.
	Efficient Classification = "EFFICIENT"

	// Distribute means that the tier is too expensive per item
	// and its processing should be distributed.
	Distribute Classification = "DISTRIBUTE"
)

// ExperimentRecord is one evaluated scale tier of the experiment.
type ExperimentRecord struct {

	// ScaleLabel is a symbolic identifier of the tier (e.g. "1 thousand").
	// It is unique within a table.
	ScaleLabel string `json:"scale" msgpack:"scale"`

	// ItemCount is resolved from ScaleLabel via a scale mapping.
	// Within a table, it must be strictly increasing.
	ItemCount int64 `json:"itemCount" msgpack:"itemCount"`

	// ProcessingTimeMs is the wall-clock time needed to process
	// all the items of the tier.
	ProcessingTimeMs float64 `json:"processingTimeMs" msgpack:"processingTimeMs"`

	// ThroughputItemsPerSec is measured externally (i.e. it is not
	// derived from ProcessingTimeMs and ItemCount).
	ThroughputItemsPerSec float64 `json:"throughputItemsPerSec" msgpack:"throughputItemsPerSec"`

	// WorkerCount is typically the same for all the records
	// (one deployment tested with different data scales) but
	// nothing should rely on that.
	WorkerCount int `json:"workerCount" msgpack:"workerCount"`

	BatchCount int `json:"batchCount" msgpack:"batchCount"`

	// derived values - see Compute()

	ProcessingTimeMin  float64 `json:"processingTimeMin" msgpack:"processingTimeMin"`
	Efficiency         float64 `json:"efficiency" msgpack:"efficiency"`
	TimePerItemUs      float64 `json:"timePerItemUs" msgpack:"timePerItemUs"`
	TheoreticalSpeedup float64 `json:"theoreticalSpeedup" msgpack:"theoreticalSpeedup"`

	// ActualSpeedup is a speedup relative to the first record's
	// per-worker throughput.
	ActualSpeedup   float64 `json:"actualSpeedup" msgpack:"actualSpeedup"`
	OverheadPercent float64 `json:"overheadPercent" msgpack:"overheadPercent"`

	Classification Classification `json:"classification" msgpack:"classification"`
}

// BaseFields returns a copy of the record with all the derived
// values (including classification) reset.
func (rec ExperimentRecord) BaseFields() ExperimentRecord {
	return ExperimentRecord{
		ScaleLabel:            rec.ScaleLabel,
		ItemCount:             rec.ItemCount,
		ProcessingTimeMs:      rec.ProcessingTimeMs,
		ThroughputItemsPerSec: rec.ThroughputItemsPerSec,
		WorkerCount:           rec.WorkerCount,
		BatchCount:            rec.BatchCount,
	}
}
