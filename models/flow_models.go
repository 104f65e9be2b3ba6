package models

// Step is one state of the quick-sale flow machine.
type Step string

const (
	StepAmount      Step = "amount"
	StepChannel     Step = "channel"
	StepConsent     Step = "consent"
	StepDispatching Step = "dispatching"
	StepSucceeded   Step = "result_success"
	StepFailed      Step = "result_failure"
)

// Terminal reports whether the flow has finished; a finished session is
// never resumed, a fresh one must be started.
func (s Step) Terminal() bool {
	return s == StepSucceeded || s == StepFailed
}

// Previous returns the step a backward transition lands on and whether
// going back is allowed at all. Rewinding out of dispatching or a
// terminal state is never allowed.
func (s Step) Previous() (Step, bool) {
	switch s {
	case StepChannel:
		return StepAmount, true
	case StepConsent:
		return StepChannel, true
	}
	return s, false
}

// FlowDraft is the ephemeral working state of one session. It is never
// persisted; only a successful submission produces a durable record.
type FlowDraft struct {
	Amount      string
	Description string
	Gateway     Gateway
	SendMethod  SendMethod
	Contact     string
	Consent     Consent
}

// NewFlowDraft returns the empty defaults a fresh session starts from.
func NewFlowDraft(defaultGateway Gateway) FlowDraft {
	return FlowDraft{
		Amount:     "0",
		Gateway:    defaultGateway,
		SendMethod: SendWhatsApp,
	}
}

// FlowResult is what a completed submission hands back to the caller.
type FlowResult struct {
	TransactionID string `json:"transactionId"`
	CheckoutID    string `json:"checkoutId"`
	PaymentURL    string `json:"paymentUrl"`
	SendURL       string `json:"sendUrl,omitempty"`
	Message       string `json:"message"`
	DispatchNote  string `json:"dispatchNote,omitempty"`
}
