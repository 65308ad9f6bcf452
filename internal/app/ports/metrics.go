package ports

type ActionMetrics interface {
	RecordAccepted(kind string)
	RecordRejected(kind string, code string)
	RecordFailure(kind string)
}
