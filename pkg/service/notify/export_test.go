package notify

var (
	BuildHighRiskBlocks = buildHighRiskBlocks
	Truncate            = truncate
)
