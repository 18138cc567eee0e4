package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-consignment-leads/internal/domain"
	"github.com/tbourn/go-consignment-leads/internal/links"
	"github.com/tbourn/go-consignment-leads/internal/report"
	"github.com/tbourn/go-consignment-leads/internal/repo"
)

// DefaultIdempotencyTTL is how long an export Idempotency-Key is honoured.
const DefaultIdempotencyTTL = 24 * time.Hour

// ExportOptions tunes a single export.
type ExportOptions struct {
	// IdempotencyKey, when set, is recorded with the batch under Scope. A
	// second export with the same (Scope, key) returns the first batch.
	IdempotencyKey string
	Scope          string
}

// Export is the result of one export: the artifacts and the rows they were
// built from.
type Export struct {
	BatchID      string         `json:"batch_id"`
	GeneratedAt  time.Time      `json:"generated_at"`
	HTML         []byte         `json:"-"`
	HTMLName     string         `json:"html_name"`
	Workbook     []byte         `json:"-"`
	WorkbookName string         `json:"workbook_name"`
	Entries      []report.Entry `json:"-"`
	Replayed     bool           `json:"replayed"`
}

// ExportService turns a contact selection into WhatsApp links, artifacts and
// audit rows.
type ExportService struct {
	DB    *gorm.DB
	Links links.Generator

	// IdempotencyTTL defaults to DefaultIdempotencyTTL.
	IdempotencyTTL time.Duration

	// Location is used for report timestamps; nil means time.Local.
	Location *time.Location

	// Now defaults to time.Now; tests pin it.
	Now func() time.Time
}

func (s *ExportService) now() time.Time {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	return now.In(s.loc())
}

func (s *ExportService) loc() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.Local
}

func (s *ExportService) ttl() time.Duration {
	if s.IdempotencyTTL > 0 {
		return s.IdempotencyTTL
	}
	return DefaultIdempotencyTTL
}

// CampaignScope is the idempotency scope of exports of one campaign.
func CampaignScope(campaignID uint) string {
	return "campaign:" + strconv.FormatUint(uint64(campaignID), 10)
}

// Export assigns templates round-robin to contacts, builds both artifacts in
// memory and only then appends one audit row per contact, all rows in one
// transaction. With no templates it fails with ErrNoTemplates before any
// write.
func (s *ExportService) Export(ctx context.Context, contacts []domain.Contact, templates []domain.MessageTemplate, opts ExportOptions) (*Export, error) {
	tr := otel.Tracer("services/ExportService")
	ctx, span := tr.Start(ctx, "Export",
		trace.WithAttributes(
			attribute.Int("contacts", len(contacts)),
			attribute.Int("templates", len(templates)),
			attribute.String("idempotency.scope", opts.Scope),
		),
	)
	defer span.End()

	if len(templates) == 0 {
		return nil, ErrNoTemplates
	}
	if len(contacts) == 0 {
		return nil, invalid("contacts", "no contacts to export")
	}

	rows := make([]links.Row, len(contacts))
	for i, c := range contacts {
		rows[i] = links.Row{Phone: c.Phone, Fields: c.Fields()}
	}
	tpls := make([]links.Template, len(templates))
	for i, t := range templates {
		tpls[i] = links.Template{ID: t.ID, Text: t.Body}
	}
	generated, err := s.Links.Generate(rows, tpls)
	if err != nil {
		return nil, err
	}

	entries := make([]report.Entry, len(contacts))
	for i, c := range contacts {
		entries[i] = report.Entry{Contact: c, TemplateID: generated[i].TemplateID, Link: generated[i].URL}
	}

	out := &Export{BatchID: uuid.NewString(), GeneratedAt: s.now(), Entries: entries}
	if err := out.render(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "render failed")
		return nil, err
	}

	exportDate := out.GeneratedAt.Format(domain.DateLayout)
	logs := make([]domain.ExportLog, len(entries))
	for i, e := range entries {
		logs[i] = domain.ExportLog{
			ContactID:  e.Contact.ID,
			TemplateID: e.TemplateID,
			Link:       e.Link,
			ExportDate: exportDate,
			BatchID:    out.BatchID,
			CreatedAt:  out.GeneratedAt,
		}
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if opts.IdempotencyKey != "" {
			if _, err := repo.CreateIdempotency(ctx, tx, opts.Scope, opts.IdempotencyKey, out.BatchID, s.ttl()); err != nil {
				return err
			}
		}
		return repo.AppendExportLogs(ctx, tx, logs)
	})
	if errors.Is(err, repo.ErrDuplicate) {
		batch, ok, lerr := s.ReplayBatch(ctx, opts.Scope, opts.IdempotencyKey)
		if lerr != nil {
			return nil, lerr
		}
		if ok {
			span.SetAttributes(attribute.Bool("idempotency.replay", true))
			return s.Rebuild(ctx, batch)
		}
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "audit write failed")
		return nil, storageErr("append export logs", err)
	}

	exportsTotal.Inc()
	exportedContacts.Add(float64(len(logs)))
	span.SetAttributes(attribute.String("export.batch_id", out.BatchID))
	log.Info().
		Str("batch_id", out.BatchID).
		Int("contacts", len(logs)).
		Int("templates", len(templates)).
		Msg("export committed")
	return out, nil
}

// ExportCampaign exports the contacts of campaignID matching filter against
// every template in rotation order.
func (s *ExportService) ExportCampaign(ctx context.Context, campaignID uint, filter repo.ContactQuery, opts ExportOptions) (*Export, error) {
	if _, err := repo.GetCampaign(ctx, s.DB, campaignID); err != nil {
		return nil, notFound("get campaign", err, ErrCampaignNotFound)
	}
	if opts.Scope == "" {
		opts.Scope = CampaignScope(campaignID)
	}
	filter.CampaignID = &campaignID

	contacts, err := repo.QueryContacts(ctx, s.DB, filter)
	if err != nil {
		return nil, storageErr("query contacts", err)
	}
	templates, err := repo.ListTemplates(ctx, s.DB)
	if err != nil {
		return nil, storageErr("list templates", err)
	}
	return s.Export(ctx, contacts, templates, opts)
}

// Rebuild regenerates the artifacts of a committed batch from its audit
// rows. It writes nothing. Contacts deleted since the export appear with
// their id only.
func (s *ExportService) Rebuild(ctx context.Context, batchID string) (*Export, error) {
	logs, err := repo.ListExportLogsByBatch(ctx, s.DB, batchID)
	if err != nil {
		return nil, storageErr("list export logs", err)
	}
	if len(logs) == 0 {
		return nil, ErrExportNotFound
	}

	ids := make([]uint, len(logs))
	for i, l := range logs {
		ids[i] = l.ContactID
	}
	byID, err := repo.GetContactsByIDs(ctx, s.DB, ids)
	if err != nil {
		return nil, storageErr("load contacts", err)
	}

	entries := make([]report.Entry, len(logs))
	for i, l := range logs {
		c, ok := byID[l.ContactID]
		if !ok {
			c = domain.Contact{ID: l.ContactID}
		}
		entries[i] = report.Entry{Contact: c, TemplateID: l.TemplateID, Link: l.Link}
	}

	out := &Export{
		BatchID:     batchID,
		GeneratedAt: logs[0].CreatedAt.In(s.loc()),
		Entries:     entries,
		Replayed:    true,
	}
	if err := out.render(); err != nil {
		return nil, err
	}
	return out, nil
}

// ReplayBatch returns the batch recorded for (scope, key) while its
// idempotency window is open.
func (s *ExportService) ReplayBatch(ctx context.Context, scope, key string) (string, bool, error) {
	rec, err := repo.GetIdempotency(ctx, s.DB, scope, key, time.Now().UTC())
	if errors.Is(err, repo.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, storageErr("idempotency lookup", err)
	}
	return rec.BatchID, true, nil
}

// Logs returns the export history of a contact, oldest first.
func (s *ExportService) Logs(ctx context.Context, contactID uint) ([]domain.ExportLog, error) {
	out, err := repo.ListExportLogsByContact(ctx, s.DB, contactID)
	if err != nil {
		return nil, storageErr("list export logs", err)
	}
	if out == nil {
		out = []domain.ExportLog{}
	}
	return out, nil
}

func (e *Export) render() error {
	html, err := report.HTML(e.GeneratedAt, e.Entries)
	if err != nil {
		return err
	}
	wb, err := report.ContactsWorkbook(e.Entries)
	if err != nil {
		return err
	}
	e.HTML, e.HTMLName = html, report.HTMLName(e.GeneratedAt)
	e.Workbook, e.WorkbookName = wb, report.WorkbookName(e.GeneratedAt)
	return nil
}
