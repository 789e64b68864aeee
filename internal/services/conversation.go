package services

import (
	"fmt"
	"strings"
)

// ProcessStatus is the acknowledgement returned to the platform for every
// processed event
type ProcessStatus string

const (
	// StatusOK means the message was routed and acted on
	StatusOK ProcessStatus = "ok"
	// StatusIgnored means the message required no action (not an error)
	StatusIgnored ProcessStatus = "ignored"
)

// customerListShortcut opens the registered-customer list. Protected:
// only privileged senders may trigger it.
const customerListShortcut = "C"

const customerFlowInstructions = "*Nuevo cliente*\n" +
	"Envia hasta 3 lineas:\n" +
	"1) Nombre (obligatorio)\n" +
	"2) Telefono (opcional)\n" +
	"3) Email (opcional)"

// ConversationEngine routes every inbound message through the per-sender
// state machine and dispatches replies.
type ConversationEngine struct {
	flows     *FlowStore
	shortcuts *ShortcutService
	customers *CustomerService
	sender    MessageSender // nil when the gateway is not configured
	audit     *AuditLogger
}

// NewConversationEngine wires the engine with its collaborators
func NewConversationEngine(flows *FlowStore, shortcuts *ShortcutService, customers *CustomerService, sender MessageSender, audit *AuditLogger) *ConversationEngine {
	return &ConversationEngine{
		flows:     flows,
		shortcuts: shortcuts,
		customers: customers,
		sender:    sender,
		audit:     audit,
	}
}

// Configured reports whether outbound replies are possible
func (e *ConversationEngine) Configured() bool {
	return e.sender != nil
}

// HandleEvent processes one raw webhook body end to end. A nil error with
// StatusIgnored is the normal outcome for payloads this service does not
// act on; only outbound send failures surface as errors.
func (e *ConversationEngine) HandleEvent(body []byte) (ProcessStatus, error) {
	e.audit.LogPayload(body)

	contactName, messages := ExtractMessages(body)
	if len(messages) == 0 {
		e.audit.Logf("no messages found in payload")
		return StatusIgnored, nil
	}

	msg := messages[0]
	text := strings.TrimSpace(msg.Text.Body)
	if text == "" || msg.From == "" {
		e.audit.Logf("payload without text or sender")
		return StatusIgnored, nil
	}
	if contactName != "" {
		e.audit.Logf("message from %s (%s)", msg.From, contactName)
	}

	return e.routeMessage(msg.From, text)
}

// routeMessage applies the routing rules in strict priority order:
// start-flow command, active-flow continuation, shortcuts, ignore.
func (e *ConversationEngine) routeMessage(sender, text string) (ProcessStatus, error) {
	// NOTE: prefix match, so "Alright" also starts the flow. Kept for
	// compatibility with the legacy behavior.
	if strings.HasPrefix(strings.ToUpper(text), "A") {
		return e.startCustomerFlow(sender)
	}

	// TakeIfActive checks and clears in one step, so a second in-flight
	// message from the same sender can never also complete the flow.
	if e.flows.TakeIfActive(sender, FlowAwaitingCustomerDetails) {
		e.audit.LogTransition(sender, FlowAwaitingCustomerDetails, FlowNone)
		return e.finishCustomerFlow(sender, text)
	}

	if reply, ok := e.shortcuts.Lookup(text); ok {
		if err := e.send(sender, reply); err != nil {
			return "", err
		}
		return StatusOK, nil
	}

	if strings.TrimSpace(text) == customerListShortcut {
		return e.sendCustomerList(sender)
	}

	e.audit.Logf("message from %s without active flow, ignored", sender)
	return StatusIgnored, nil
}

// startCustomerFlow puts the sender into the customer-creation flow,
// replacing whatever flow was active before.
func (e *ConversationEngine) startCustomerFlow(sender string) (ProcessStatus, error) {
	previous := e.flows.Get(sender)
	e.flows.Set(sender, FlowAwaitingCustomerDetails)
	e.audit.LogTransition(sender, previous, FlowAwaitingCustomerDetails)

	if err := e.send(sender, customerFlowInstructions); err != nil {
		return "", err
	}
	return StatusOK, nil
}

// finishCustomerFlow completes the single-shot creation flow. The state is
// already cleared when we get here; valid or not, the flow never retries
// in place.
func (e *ConversationEngine) finishCustomerFlow(sender, text string) (ProcessStatus, error) {
	draft := ParseCustomerDraft(text)

	customer, err := e.customers.Create(draft)
	if err != nil {
		reply := fmt.Sprintf("No se pudo crear el cliente: %v", err)
		if vErr, ok := err.(*ValidationError); ok {
			reply = vErr.Message
		}
		e.audit.Logf("customer creation failed for %s: %v", sender, err)
		if sendErr := e.send(sender, reply); sendErr != nil {
			return "", sendErr
		}
		return StatusOK, nil
	}

	confirmation := fmt.Sprintf("Cliente creado: %s. Responde A para crear otro o NO para finalizar.", customer.Name)
	if err := e.send(sender, confirmation); err != nil {
		return "", err
	}
	return StatusOK, nil
}

// sendCustomerList answers the protected list shortcut with an interactive
// list of registered customers.
func (e *ConversationEngine) sendCustomerList(sender string) (ProcessStatus, error) {
	if !e.shortcuts.IsPrivilegedSender(sender) {
		e.audit.Logf("sender %s not allowed to list customers", sender)
		return StatusIgnored, nil
	}

	customers, err := e.customers.List()
	if err != nil {
		e.audit.Logf("customer list failed for %s: %v", sender, err)
		if sendErr := e.send(sender, fmt.Sprintf("No se pudo obtener la lista de clientes: %v", err)); sendErr != nil {
			return "", sendErr
		}
		return StatusOK, nil
	}
	if len(customers) == 0 {
		if err := e.send(sender, "Aun no hay clientes registrados. Envia A para crear el primero."); err != nil {
			return "", err
		}
		return StatusOK, nil
	}

	if e.sender == nil {
		return "", ErrNotConfigured
	}
	sections := BuildCustomerSections(customers)
	err = e.sender.SendList(sender, "Estos son los clientes registrados:", "Ver clientes", sections, "Clientes", "")
	if err != nil {
		return "", err
	}
	return StatusOK, nil
}

func (e *ConversationEngine) send(recipient, message string) error {
	if e.sender == nil {
		return ErrNotConfigured
	}
	return e.sender.SendText(recipient, message)
}
