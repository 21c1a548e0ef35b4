package orders

// Props keys recorded by the order operators. The props map is a
// schema-less convention channel; these constants document it without
// enforcing it.
const (
	PropVersion       = "version"
	PropLastEventTime = "lastEventTime"
	PropEventCount    = "eventCount"
	PropLastEventType = "lastEventType"

	PropReplayed           = "replayed"
	PropReplayTime         = "replayTime"
	PropReplayedEventCount = "replayedEventCount"

	PropSnapshotVersion = "snapshotVersion"
	PropSnapshotTime    = "snapshotTime"
	PropHasSnapshot     = "hasSnapshot"

	PropNormalized        = "normalized"
	PropNormalizationTime = "normalizationTime"
	PropRemovedDuplicates = "removedDuplicates"

	PropCommitted     = "committed"
	PropCommitVersion = "commitVersion"
	PropCommitTime    = "commitTime"
	PropKeptEvents    = "keptEvents"
	PropClearedEvents = "clearedEvents"

	PropValidationResult = "validationResult"
	PropValidationErrors = "validationErrors"
)

// Validation result labels.
const (
	ValidationPass = "PASS"
	ValidationFail = "FAIL"
)
