// Package sync pulls user records from an upstream directory on a
// cron schedule and upserts them into the local users table. Upstream
// data is untrusted: every record passes through the ingress sanitizer
// and typed validation before it is stored.
package sync

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/edustack/admin-api/internal/server"
	"github.com/edustack/admin-api/internal/transform"
	"github.com/edustack/admin-api/internal/validation"
	"github.com/go-playground/validator/v10"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
)

// runTimeout bounds one full sync run, fetch included.
const runTimeout = 2 * time.Minute

var validate = validator.New()

// UserUpserter stores one synced user record keyed by external id.
type UserUpserter interface {
	UpsertUser(ctx context.Context, record transform.Value) (transform.Value, error)
}

// SyncService owns the cron scheduler and the sync run itself.
type SyncService struct {
	server *server.Server
	users  UserUpserter
	cron   *cron.Cron
	client *http.Client
}

func NewSyncService(s *server.Server, users UserUpserter) *SyncService {
	return &SyncService{
		server: s,
		users:  users,
		cron:   cron.New(),
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Start schedules the sync job. Without an upstream URL nothing is
// scheduled and the service is inert.
func (s *SyncService) Start() error {
	if s.server.Config.Sync.UpstreamURL == "" {
		s.server.Logger.Info().Msg("user sync disabled: no upstream URL configured")
		return nil
	}

	_, err := s.cron.AddFunc(s.server.Config.Sync.Schedule, s.run)
	if err != nil {
		return errors.Wrap(err, "scheduling user sync")
	}

	s.cron.Start()
	s.server.Logger.Info().
		Str("schedule", s.server.Config.Sync.Schedule).
		Msg("user sync scheduled")
	return nil
}

// Stop halts the scheduler; a run in flight finishes on its own.
func (s *SyncService) Stop() {
	s.cron.Stop()
}

func (s *SyncService) run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	if app := s.server.LoggerService.GetApplication(); app != nil {
		txn := app.StartTransaction("user-sync")
		defer txn.End()
		ctx = newrelic.NewContext(ctx, txn)
	}

	synced, skipped, err := s.syncUsers(ctx)
	if err != nil {
		s.server.Logger.Error().Err(err).Msg("user sync failed")
		return
	}
	s.server.Logger.Info().
		Int("synced", synced).
		Int("skipped", skipped).
		Msg("user sync completed")
}

// syncUsers fetches the upstream directory and upserts each record.
// A bad record is skipped and logged, never aborts the whole run.
func (s *SyncService) syncUsers(ctx context.Context) (synced, skipped int, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.server.Config.Sync.UpstreamURL, nil)
	if err != nil {
		return 0, 0, errors.Wrap(err, "building directory request")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, 0, errors.Wrap(err, "fetching user directory")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, errors.Errorf("user directory returned status %d", resp.StatusCode)
	}

	var entries []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return 0, 0, errors.Wrap(err, "decoding user directory")
	}

	for _, entry := range entries {
		record, err := s.prepare(entry)
		if err != nil {
			skipped++
			s.server.Logger.Warn().Err(err).Msg("skipping upstream user record")
			continue
		}

		if _, err := s.users.UpsertUser(ctx, record); err != nil {
			skipped++
			s.server.Logger.Warn().Err(err).Msg("upserting synced user failed")
			continue
		}
		synced++
	}
	return synced, skipped, nil
}

// upstreamUser is the shape one directory record must validate to
// before it may be stored.
type upstreamUser struct {
	ExternalID string `validate:"required"`
	Email      string `validate:"required,email"`
	FullName   string `validate:"required,min=1,max=200"`
	AvatarURL  string `validate:"omitempty"`
	ResumeURL  string `validate:"omitempty"`
}

func (u upstreamUser) Validate() error {
	return validate.Struct(u)
}

// prepare sanitizes one raw directory entry and converts it into the
// upsert record. Sanitization runs in reject mode: an upstream record
// carrying markup or injection patterns is dropped, not repaired.
func (s *SyncService) prepare(entry map[string]any) (transform.Value, error) {
	v, err := transform.FromAny(entry)
	if err != nil {
		return transform.Null(), err
	}

	clean, err := s.server.Sanitizer.Sanitize(v)
	if err != nil {
		return transform.Null(), err
	}

	user := upstreamUser{
		ExternalID: stringField(clean, "id"),
		Email:      stringField(clean, "email"),
		FullName:   stringField(clean, "fullName"),
		AvatarURL:  stringField(clean, "avatarUrl"),
		ResumeURL:  stringField(clean, "resumeUrl"),
	}
	if err := validation.Check(user); err != nil {
		return transform.Null(), err
	}

	fields := map[string]transform.Value{
		"externalId": transform.String(user.ExternalID),
		"email":      transform.String(user.Email),
		"fullName":   transform.String(user.FullName),
	}
	if user.AvatarURL != "" {
		fields["avatarUrl"] = transform.String(user.AvatarURL)
	}
	if user.ResumeURL != "" {
		fields["resumeUrl"] = transform.String(user.ResumeURL)
	}
	return transform.Record(fields), nil
}

func stringField(record transform.Value, key string) string {
	if record.Kind != transform.KindRecord {
		return ""
	}
	field, ok := record.Rec[key]
	if !ok || field.Kind != transform.KindString {
		return ""
	}
	return field.Str
}
