package server

import (
	// Go Internal Packages
	"encoding/json"
	"net/http"

	// Local Packages
	errors "quick-sale/errors"
	models "quick-sale/models"
	flow "quick-sale/services/flow"

	// External Packages
	"github.com/go-chi/chi/v5"
)

// sessionView is the wire shape of a flow session. The signature bytes
// never leave the server; only the consent flags do.
type sessionView struct {
	ID              string             `json:"id"`
	Step            models.Step        `json:"step"`
	Amount          string             `json:"amount"`
	Description     string             `json:"description"`
	Gateway         models.Gateway     `json:"gateway"`
	SendMethod      models.SendMethod  `json:"sendMethod"`
	Contact         string             `json:"contact"`
	TCAccepted      bool               `json:"tcAccepted"`
	TCText          string             `json:"tcText"`
	SignatureEmpty  bool               `json:"signatureEmpty"`
	EnabledGateways []models.Gateway   `json:"enabledGateways"`
	Result          *models.FlowResult `json:"result,omitempty"`
	Error           string             `json:"error,omitempty"`
}

func (s *Server) sessionView(session *flow.Session) sessionView {
	return sessionView{
		ID:              session.ID,
		Step:            session.Step,
		Amount:          session.Draft.Amount,
		Description:     session.Draft.Description,
		Gateway:         session.Draft.Gateway,
		SendMethod:      session.Draft.SendMethod,
		Contact:         session.Draft.Contact,
		TCAccepted:      session.Draft.Consent.IsAccepted(),
		TCText:          s.tenant.Branding.TCText,
		SignatureEmpty:  session.Draft.Consent.IsSignatureEmpty(),
		EnabledGateways: s.orchestrator.EnabledGateways(),
		Result:          session.Result,
		Error:           session.Error,
	}
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	session := s.orchestrator.StartSession(actorID(r))
	respondJSON(w, http.StatusCreated, s.sessionView(session))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.orchestrator.Session(chi.URLParam(r, "sessionID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, s.sessionView(session))
}

func (s *Server) handleSubmitAmount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount      string `json:"amount"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.InvalidBodyErr(err))
		return
	}

	session, err := s.orchestrator.SubmitAmount(chi.URLParam(r, "sessionID"), req.Amount, req.Description)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, s.sessionView(session))
}

func (s *Server) handleSubmitChannel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Gateway    models.Gateway    `json:"gateway"`
		SendMethod models.SendMethod `json:"sendMethod"`
		Contact    string            `json:"contact"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.InvalidBodyErr(err))
		return
	}

	session, err := s.orchestrator.SubmitChannel(chi.URLParam(r, "sessionID"), req.Gateway, req.SendMethod, req.Contact)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, s.sessionView(session))
}

func (s *Server) handleRecordConsent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Accepted  bool   `json:"tcAccepted"`
		Signature string `json:"signature"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.InvalidBodyErr(err))
		return
	}

	session, err := s.orchestrator.RecordConsent(chi.URLParam(r, "sessionID"), req.Accepted, req.Signature)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, s.sessionView(session))
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	session, err := s.orchestrator.Back(chi.URLParam(r, "sessionID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, s.sessionView(session))
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	session, err := s.orchestrator.Cancel(chi.URLParam(r, "sessionID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, s.sessionView(session))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	session, err := s.orchestrator.Reset(chi.URLParam(r, "sessionID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, s.sessionView(session))
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	session, err := s.orchestrator.Submit(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		// The session (when present) reports which step the failure
		// returned it to, so the client can retry from there.
		if session != nil {
			respondJSON(w, errors.HTTPStatus(err), s.sessionView(session))
			return
		}
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, s.sessionView(session))
}
