package transfer

// State is a state of the sender or receiver state machine.
type State string

// Sender states.
const (
	SenderIdle                    State = "idle"
	SenderAwaitingApproval        State = "awaiting_approval"
	SenderApprovedWaitingReceiver State = "approved_waiting_receiver"
	SenderSending                 State = "sending"
	SenderCompleted               State = "completed"
)

// Receiver states.
const (
	ReceiverIdle                State = "idle"
	ReceiverConnecting          State = "connecting"
	ReceiverAwaitingAcknowledge State = "awaiting_acknowledge"
	ReceiverFolderPending       State = "folder_pending"
	ReceiverIndexingTarget      State = "indexing_target"
	ReceiverRequestingManifest  State = "requesting_manifest"
	ReceiverPlanningAndFetching State = "planning_and_fetching"
	ReceiverValidating          State = "validating"
	ReceiverCompleted           State = "completed"
)
