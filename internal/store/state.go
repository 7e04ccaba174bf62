package store

import (
	"encoding/json"
	"sort"

	"github.com/mark3labs/dispatch/internal/draft"
	"github.com/mark3labs/dispatch/internal/logger"
	"github.com/mark3labs/dispatch/internal/nats"
)

// State is the reduced view of every record in the event stream.
type State struct {
	ServiceCalls map[string]*ServiceCall
	Certificates map[string]*Certificate
	Documents    map[string]*Document
	Disputes     map[string]*Dispute
	Messages     []*DisputeMessage
}

// NewState returns an empty State.
func NewState() *State {
	return &State{
		ServiceCalls: make(map[string]*ServiceCall),
		Certificates: make(map[string]*Certificate),
		Documents:    make(map[string]*Document),
		Disputes:     make(map[string]*Dispute),
	}
}

// statusChange is the payload of a status event.
type statusChange struct {
	Status string `json:"status"`
}

// Apply reduces one event into the state. Unknown entities and malformed
// payloads are logged and skipped.
func (st *State) Apply(event Event) {
	var err error
	switch event.Entity {
	case nats.EntityServiceCall:
		err = st.applyServiceCall(event)
	case nats.EntityCertificate:
		err = st.applyCertificate(event)
	case nats.EntityDocument:
		err = st.applyDocument(event)
	case nats.EntityDispute:
		err = st.applyDispute(event)
	case nats.EntityDisputeMessage:
		err = st.applyMessage(event)
	default:
		logger.Warn("Unknown event entity %q (id=%s)", event.Entity, event.ID)
		return
	}
	if err != nil {
		logger.Warn("Skipping %s %s event for %s: %v", event.Entity, event.Action, event.ID, err)
	}
}

func (st *State) applyServiceCall(event Event) error {
	switch event.Action {
	case ActionUpsert:
		var call draft.ServiceCall
		if err := json.Unmarshal(event.Data, &call); err != nil {
			return err
		}
		rec, ok := st.ServiceCalls[event.ID]
		if !ok {
			rec = &ServiceCall{Meta: created(event)}
			st.ServiceCalls[event.ID] = rec
		}
		rec.ServiceCall = call
		touch(&rec.Meta, event)
	case ActionStatus:
		rec, ok := st.ServiceCalls[event.ID]
		if !ok {
			return ErrNotFound
		}
		var change statusChange
		if err := json.Unmarshal(event.Data, &change); err != nil {
			return err
		}
		rec.Status = change.Status
		touch(&rec.Meta, event)
	}
	return nil
}

func (st *State) applyCertificate(event Event) error {
	if event.Action != ActionUpsert {
		return nil
	}
	var cert draft.Certificate
	if err := json.Unmarshal(event.Data, &cert); err != nil {
		return err
	}
	rec, ok := st.Certificates[event.ID]
	if !ok {
		rec = &Certificate{Meta: created(event)}
		st.Certificates[event.ID] = rec
	}
	rec.Certificate = cert
	touch(&rec.Meta, event)
	return nil
}

func (st *State) applyDocument(event Event) error {
	if event.Action != ActionUpsert {
		return nil
	}
	var doc Document
	if err := json.Unmarshal(event.Data, &doc); err != nil {
		return err
	}
	if prev, ok := st.Documents[event.ID]; ok {
		doc.Meta = prev.Meta
	} else {
		doc.Meta = created(event)
	}
	touch(&doc.Meta, event)
	st.Documents[event.ID] = &doc
	return nil
}

func (st *State) applyDispute(event Event) error {
	switch event.Action {
	case ActionUpsert:
		var d Dispute
		if err := json.Unmarshal(event.Data, &d); err != nil {
			return err
		}
		if prev, ok := st.Disputes[event.ID]; ok {
			d.Meta = prev.Meta
		} else {
			d.Meta = created(event)
		}
		if d.Status == "" {
			d.Status = DisputeOpen
		}
		touch(&d.Meta, event)
		st.Disputes[event.ID] = &d
	case ActionResolve:
		d, ok := st.Disputes[event.ID]
		if !ok {
			return ErrNotFound
		}
		d.Status = DisputeResolved
		d.ResolvedAt = event.Timestamp
		touch(&d.Meta, event)
	}
	return nil
}

func (st *State) applyMessage(event Event) error {
	if event.Action != ActionAdd {
		return nil
	}
	var msg DisputeMessage
	if err := json.Unmarshal(event.Data, &msg); err != nil {
		return err
	}
	msg.Meta = created(event)
	st.Messages = append(st.Messages, &msg)
	if d, ok := st.Disputes[msg.DisputeID]; ok {
		d.UpdatedAt = event.Timestamp
	}
	return nil
}

// Thread returns the messages of a dispute, oldest first.
func (st *State) Thread(disputeID string) []*DisputeMessage {
	var out []*DisputeMessage
	for _, m := range st.Messages {
		if m.DisputeID == disputeID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func created(event Event) Meta {
	return Meta{
		ID:        event.ID,
		CreatedBy: event.Actor,
		CreatedAt: event.Timestamp,
	}
}

func touch(m *Meta, event Event) {
	m.UpdatedBy = event.Actor
	m.UpdatedAt = event.Timestamp
	if m.CreatedAt.IsZero() {
		m.CreatedAt = event.Timestamp
	}
}
