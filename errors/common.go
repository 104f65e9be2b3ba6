package errors

import "fmt"

func InvalidParamsErr(err error) error {
	return E(Invalid, "invalid params", err)
}

func InvalidBodyErr(err error) error {
	return E(Invalid, "invalid request body", err)
}

func ValidationFailedErr(err error) error {
	return E(Invalid, "validation failed", err)
}

func EmptyParamErr(field string) error {
	ve := ValidationErrs()
	ve.Add(field, "cannot be empty")
	return E(Invalid, "validation failed", ve.Err())
}

func UnconfiguredGatewayErr(gateway string) error {
	return E(Unconfigured, fmt.Sprintf("%s gateway is not configured", gateway))
}

func GatewayRejectedErr(gateway, detail string) error {
	if detail == "" {
		detail = "request declined by the processor"
	}
	return E(Rejected, fmt.Sprintf("%s: %s", gateway, detail))
}

func GatewayUnavailableErr(gateway string, err error) error {
	return E(Unavailable, fmt.Sprintf("%s gateway is unreachable", gateway), err)
}

func PersistenceErr(err error) error {
	return E(Persistence, "transaction could not be saved", err)
}

// TerminalStatusErr marks an attempt to move a record from one terminal
// status to a different one, which the lifecycle never allows.
func TerminalStatusErr(id, from, to string) error {
	return E(Conflict, fmt.Sprintf("transaction %s is already %s, cannot become %s", id, from, to))
}

func TxNotFoundErr(id string) error {
	return E(NotFound, fmt.Sprintf("transaction %s not found", id))
}

func SessionNotFoundErr(id string) error {
	return E(NotFound, fmt.Sprintf("session %s not found", id))
}
