// Package events publishes domain events to NATS for downstream consumers
// such as notification workers and audit sinks. Publishing is best effort;
// a broker outage never fails the request that produced the event.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/verlyx/hub-server/internal/models"
)

// Subjects
const (
	subjectDocumentGenerated = "hub.document.generated"
	subjectMemberInvited     = "hub.company.%s.member.invited"
	subjectMemberRemoved     = "hub.company.%s.member.removed"
)

// Publisher emits domain events. A nil connection disables publishing,
// which keeps single-process deployments working without a broker.
type Publisher struct {
	nc *nats.Conn
}

// NewPublisher creates a publisher over the given connection. nc may be nil.
func NewPublisher(nc *nats.Conn) *Publisher {
	return &Publisher{nc: nc}
}

// DocumentGenerated announces a freshly generated document
func (p *Publisher) DocumentGenerated(doc *models.GeneratedDocument) {
	p.publish(subjectDocumentGenerated, map[string]interface{}{
		"documentId": doc.ID.String(),
		"templateId": doc.TemplateID.String(),
		"fileName":   doc.FileName,
		"filePath":   doc.FilePath,
		"timestamp":  time.Now(),
	})
}

// MemberInvited announces a new company membership
func (p *Publisher) MemberInvited(member *models.CompanyUser) {
	subject := subjectFor(subjectMemberInvited, member)
	p.publish(subject, map[string]interface{}{
		"companyId": member.CompanyID.String(),
		"userId":    member.UserID.String(),
		"role":      member.Role,
		"timestamp": time.Now(),
	})
}

// MemberRemoved announces a removed company membership
func (p *Publisher) MemberRemoved(member *models.CompanyUser) {
	subject := subjectFor(subjectMemberRemoved, member)
	p.publish(subject, map[string]interface{}{
		"companyId": member.CompanyID.String(),
		"userId":    member.UserID.String(),
		"timestamp": time.Now(),
	})
}

func subjectFor(pattern string, member *models.CompanyUser) string {
	return fmt.Sprintf(pattern, member.CompanyID)
}

func (p *Publisher) publish(subject string, payload map[string]interface{}) {
	if p == nil || p.nc == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("subject", subject).Msg("Failed to marshal event")
		return
	}

	if err := p.nc.Publish(subject, data); err != nil {
		log.Error().Err(err).Str("subject", subject).Msg("Failed to publish event")
		return
	}

	log.Debug().Str("subject", subject).Msg("Event published")
}
