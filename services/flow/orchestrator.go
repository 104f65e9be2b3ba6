package flow

import (
	// Go Internal Packages
	"context"
	"fmt"
	"sync"
	"time"

	// Local Packages
	config "quick-sale/config"
	errors "quick-sale/errors"
	models "quick-sale/models"
	dispatch "quick-sale/services/dispatch"

	// External Packages
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GatewayProvider is the slice of the gateway registry the orchestrator
// needs: which gateways the tenant may use, and checkout creation.
type GatewayProvider interface {
	Enabled() []models.Gateway
	Default() (models.Gateway, bool)
	CreateCheckout(ctx context.Context, gateway models.Gateway, req models.CheckoutRequest) (*models.Checkout, error)
}

// TxRepository persists the transaction record. The orchestrator only
// ever saves; reads belong to the surrounding application.
type TxRepository interface {
	Save(ctx context.Context, txn *models.Transaction) (string, error)
}

// CheckoutIndex keeps the checkout of an in-flight submission so a
// retry after a failed save reconciles instead of double-charging. The
// key carries the amount and gateway, so a draft edited between
// attempts misses the entry and a fresh checkout is created.
type CheckoutIndex interface {
	Remember(ctx context.Context, key string, checkout models.Checkout) error
	Recall(ctx context.Context, key string) (*models.Checkout, error)
	Forget(ctx context.Context, key string) error
}

// Session is one quick-sale flow from amount entry to a terminal result.
type Session struct {
	ID      string
	ActorID string
	Step    models.Step
	Draft   models.FlowDraft
	Result  *models.FlowResult
	Error   string

	mu sync.Mutex
}

// Orchestrator drives the four-step flow and owns every transition,
// validation and failure rule. All side effects happen inside Submit.
type Orchestrator struct {
	logger        *zap.Logger
	gateways      GatewayProvider
	repo          TxRepository
	checkouts     CheckoutIndex
	sessions      *SessionStore
	tenant        config.Tenant
	submitTimeout time.Duration
}

func NewOrchestrator(logger *zap.Logger, gateways GatewayProvider, repo TxRepository,
	checkouts CheckoutIndex, tenant config.Tenant, submitTimeout time.Duration) *Orchestrator {
	return &Orchestrator{
		logger:        logger,
		gateways:      gateways,
		repo:          repo,
		checkouts:     checkouts,
		sessions:      NewSessionStore(),
		tenant:        tenant,
		submitTimeout: submitTimeout,
	}
}

// StartSession opens a fresh flow for the acting user with empty
// defaults and the first enabled gateway preselected.
func (o *Orchestrator) StartSession(actorID string) *Session {
	defaultGateway, _ := o.gateways.Default()
	session := &Session{
		ID:      uuid.NewString(),
		ActorID: actorID,
		Step:    models.StepAmount,
		Draft:   models.NewFlowDraft(defaultGateway),
	}
	o.sessions.Put(session)
	o.logger.Info("flow session started", zap.String("session_id", session.ID))
	return session
}

func (o *Orchestrator) Session(id string) (*Session, error) {
	return o.sessions.Get(id)
}

// EnabledGateways exposes the selectable gateway set for the channel step.
func (o *Orchestrator) EnabledGateways() []models.Gateway {
	return o.gateways.Enabled()
}

// SubmitAmount records the amount step and moves forward when it
// validates.
func (o *Orchestrator) SubmitAmount(sessionID, amount, description string) (*Session, error) {
	session, err := o.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.Step != models.StepAmount {
		return nil, stepMismatchErr(session.Step, models.StepAmount)
	}

	session.Draft.Amount = amount
	session.Draft.Description = description
	if err := validateAmount(&session.Draft); err != nil {
		return nil, err
	}

	session.Step = models.StepChannel
	return session, nil
}

// SubmitChannel records gateway, delivery channel and contact, and moves
// forward when they validate against the tenant's enabled gateways.
func (o *Orchestrator) SubmitChannel(sessionID string, gateway models.Gateway,
	method models.SendMethod, contact string) (*Session, error) {
	session, err := o.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.Step != models.StepChannel {
		return nil, stepMismatchErr(session.Step, models.StepChannel)
	}

	session.Draft.Gateway = gateway
	session.Draft.SendMethod = method
	session.Draft.Contact = contact
	if err := validateChannel(&session.Draft, o.gateways.Enabled()); err != nil {
		return nil, err
	}

	session.Step = models.StepConsent
	return session, nil
}

// RecordConsent stores the terms flag and signature image on the draft.
// It does not advance the flow; Submit gates on the consent validator.
func (o *Orchestrator) RecordConsent(sessionID string, accepted bool, signatureDataURL string) (*Session, error) {
	session, err := o.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.Step != models.StepConsent {
		return nil, stepMismatchErr(session.Step, models.StepConsent)
	}

	session.Draft.Consent.Accepted = accepted
	if err := session.Draft.Consent.SetSignatureFromDataURL(signatureDataURL); err != nil {
		return nil, err
	}
	return session, nil
}

// Back rewinds one step. Rewinding is never possible once dispatching
// has begun or the flow has finished.
func (o *Orchestrator) Back(sessionID string) (*Session, error) {
	session, err := o.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.Step == models.StepDispatching {
		return nil, errors.E(errors.Conflict, "cannot go back while the submission is in flight")
	}
	prev, ok := session.Step.Previous()
	if !ok {
		return nil, errors.E(errors.Invalid, "cannot go back from this step")
	}
	session.Step = prev
	return session, nil
}

// Cancel abandons the flow. The draft is discarded and the session ends
// in the failure result; nothing was persisted.
func (o *Orchestrator) Cancel(sessionID string) (*Session, error) {
	session, err := o.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.Step == models.StepDispatching {
		return nil, errors.E(errors.Conflict, "cannot cancel while the submission is in flight")
	}
	if session.Step.Terminal() {
		return session, nil
	}

	session.Draft = models.FlowDraft{}
	session.Step = models.StepFailed
	return session, nil
}

// Reset throws the session away and starts a fresh one for the same
// actor: empty draft, no signature, back at amount entry.
func (o *Orchestrator) Reset(sessionID string) (*Session, error) {
	session, err := o.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	o.sessions.Delete(sessionID)
	return o.StartSession(session.ActorID), nil
}

// Submit runs the dispatching step: checkout, persist, compose, deliver,
// in that order, aborting the rest on the first failure. Gateway and
// persistence failures return the flow to the consent step with the
// draft intact so the user can retry.
func (o *Orchestrator) Submit(ctx context.Context, sessionID string) (*Session, error) {
	session, err := o.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.Step == models.StepDispatching {
		return nil, errors.E(errors.Conflict, "a submission is already in flight")
	}
	if session.Step != models.StepConsent {
		return nil, stepMismatchErr(session.Step, models.StepConsent)
	}

	draft := &session.Draft
	if err := validateAmount(draft); err != nil {
		return nil, err
	}
	if err := validateChannel(draft, o.gateways.Enabled()); err != nil {
		return nil, err
	}
	if err := validateConsent(draft); err != nil {
		return nil, err
	}

	session.Step = models.StepDispatching
	session.Error = ""

	ctx, cancel := context.WithTimeout(ctx, o.submitTimeout)
	defer cancel()

	result, err := o.dispatchLocked(ctx, session)
	if err != nil {
		// Recoverable: back to consent, draft intact, user may retry.
		session.Step = models.StepConsent
		session.Error = errors.MessageOf(err)
		o.logger.Warn("submission failed",
			zap.String("session_id", session.ID),
			zap.String("kind", errors.KindOf(err).String()),
			zap.Error(err))
		return session, err
	}

	session.Result = result
	session.Step = models.StepSucceeded
	o.logger.Info("flow completed",
		zap.String("session_id", session.ID),
		zap.String("transaction_id", result.TransactionID))
	return session, nil
}

// dispatchLocked performs the four ordered sub-steps. The caller holds
// the session lock.
func (o *Orchestrator) dispatchLocked(ctx context.Context, session *Session) (*models.FlowResult, error) {
	draft := &session.Draft
	amount, amountCents, err := models.ParseAmount(draft.Amount)
	if err != nil {
		return nil, err
	}

	description := draft.Description
	if description == "" {
		description = "Payment"
	}

	// 1. Checkout. An earlier attempt may already have created one that
	// failed to persist; reuse it rather than opening a second one. The
	// index key pins the amount and gateway, so a checkout remembered
	// before a draft edit is never paired with the new values.
	indexKey := fmt.Sprintf("%s:%d:%s", session.ID, amountCents, draft.Gateway)
	checkout, err := o.checkouts.Recall(ctx, indexKey)
	if err != nil {
		o.logger.Warn("checkout index unavailable", zap.Error(err))
		checkout = nil
	}
	if checkout == nil {
		checkout, err = o.gateways.CreateCheckout(ctx, draft.Gateway, models.CheckoutRequest{
			AmountCents:   amountCents,
			Currency:      o.tenant.Branding.CurrencyCode,
			Description:   description,
			CustomerPhone: draft.Contact,
		})
		if err != nil {
			return nil, err
		}
		if err := o.checkouts.Remember(ctx, indexKey, *checkout); err != nil {
			o.logger.Warn("failed to index checkout", zap.Error(err))
		}
	}

	// 2. Persist. The signature is captured exactly once, here.
	branding := o.tenant.Branding
	txn := &models.Transaction{
		TenantID:       o.tenant.ID,
		Amount:         amount,
		AmountCents:    amountCents,
		Description:    draft.Description,
		Gateway:        draft.Gateway,
		CheckoutID:     checkout.ID,
		PaymentURL:     checkout.URL,
		SendMethod:     draft.SendMethod,
		SendTo:         draft.Contact,
		SignatureImage: draft.Consent.CaptureSignatureImage(),
		VATAmount:      models.VATPortion(amount, branding.VATRate, branding.VATEnabled),
	}
	if branding.VATEnabled {
		txn.VATRate = branding.VATRate
	}

	txnID, err := o.repo.Save(ctx, txn)
	if err != nil {
		return nil, err
	}

	// 3. Compose.
	message := dispatch.FormatPaymentMessage(
		branding.BusinessName, amount, branding.Currency, checkout.URL, draft.Description)

	// 4. Deliver. A dispatch failure is non-fatal: the record is saved,
	// the caller just falls back to copying the link.
	result := &models.FlowResult{
		TransactionID: txnID,
		CheckoutID:    checkout.ID,
		PaymentURL:    checkout.URL,
		Message:       message,
	}
	subject := dispatch.EmailSubject(branding.Currency, amount)
	sendURL, err := dispatch.BuildLink(draft.SendMethod, draft.Contact, subject, message, checkout.URL)
	if err != nil {
		result.DispatchNote = "link could not be built; copy the payment URL manually"
		o.logger.Warn("dispatch link failed",
			zap.String("transaction_id", txnID), zap.Error(err))
	} else {
		result.SendURL = sendURL
	}

	if err := o.checkouts.Forget(ctx, indexKey); err != nil {
		o.logger.Warn("failed to clear checkout index", zap.Error(err))
	}
	return result, nil
}

func stepMismatchErr(current, want models.Step) error {
	return errors.E(errors.Invalid,
		"operation belongs to the "+string(want)+" step, session is at "+string(current))
}
