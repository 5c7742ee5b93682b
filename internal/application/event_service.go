package application

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/sirupsen/logrus"

	"github.com/chinmayajanata/backend/internal/domain/entity"
	"github.com/chinmayajanata/backend/internal/domain/identity"
	"github.com/chinmayajanata/backend/internal/domain/rank"
	repo "github.com/chinmayajanata/backend/internal/domain/repository"
	"github.com/chinmayajanata/backend/internal/domain/tier"
)

const eventSearchIndex = "events"

// EventService owns the event aggregate: creation through the identity
// allocator, the bidirectional attendance relationship with users,
// endorsements, and tier recomputation after every change that feeds the
// score. An optional Elasticsearch index mirrors events for text search;
// Postgres stays authoritative.
type EventService struct {
	Repo      repo.EventRepository
	Users     repo.UserRepository
	Centers   repo.CenterRepository
	Allocator *identity.Allocator
	Logger    *logrus.Logger
	ES        *elasticsearch.Client
	ESIndex   string
}

func (s *EventService) searchIndex() string {
	if s.ESIndex != "" {
		return s.ESIndex
	}
	return eventSearchIndex
}

// Create persists a new event for the given center. Usernames in endorsers
// are looked up; any at or above the sevak rank are captured as endorsers,
// the rest are silently dropped. The initial tier is computed before the
// allocator commits the row, so the event is never visible with a stale
// score.
func (s *EventService) Create(ctx context.Context, centerID int64, loc entity.Location, date time.Time, category int, description string, endorserNames []string) (*entity.Event, error) {
	exists, err := s.Centers.Exists(ctx, centerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCenterNotFound
	}

	e := entity.NewEvent(loc, date, centerID)
	e.Description = description
	if category == rank.Bhiksha {
		e.Category = rank.Bhiksha
	}
	for _, name := range endorserNames {
		u, uErr := s.Users.GetByUsername(ctx, name)
		if uErr != nil {
			if errors.Is(uErr, repo.ErrNotFound) {
				continue
			}
			return nil, uErr
		}
		if u.VerificationLevel < rank.EndorserFloor {
			continue
		}
		e.Endorsers = append(e.Endorsers, entity.Endorser{
			Username:          u.Username,
			Points:            u.Points,
			VerificationLevel: u.VerificationLevel,
		})
	}
	e.Tier = tier.Score(e.Endorsers, e.PeopleAttending)

	id, err := s.Allocator.Allocate(ctx, rank.EventIDSpace, func(ctx context.Context, candidate int64) error {
		probe := *e
		probe.ID = candidate
		return s.Repo.Create(ctx, &probe)
	})
	if err != nil {
		return nil, err
	}
	e.ID = id

	s.index(ctx, e)
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"event_id": id, "center_id": centerID}).Info("event created")
	}
	return e, nil
}

// Get fetches an event by id.
func (s *EventService) Get(ctx context.Context, id int64) (*entity.Event, error) {
	e, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrEventNotFound
	}
	return e, err
}

// ByCenter lists the events hosted by a center.
func (s *EventService) ByCenter(ctx context.Context, centerID int64) ([]*entity.Event, error) {
	exists, err := s.Centers.Exists(ctx, centerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCenterNotFound
	}
	return s.Repo.ListByCenter(ctx, centerID)
}

// AttachAttendee records that a user attends an event, on both sides of the
// relationship, then recomputes the tier. Both deltas are conditional single
// statements, so they are always applied even when one side already holds the
// link; that makes a retry after a partial failure converge instead of
// leaving the two lists out of step. Attaching an attendee twice is a no-op.
func (s *EventService) AttachAttendee(ctx context.Context, eventID int64, username string) error {
	if _, err := s.Repo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	userAdded, err := s.Users.AddAttendedEvent(ctx, username, eventID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	eventAdded, err := s.Repo.AddAttendee(ctx, eventID, username)
	if err != nil {
		if userAdded {
			// Roll the user side back so the two lists stay consistent.
			if _, rbErr := s.Users.RemoveAttendedEvent(ctx, username, eventID); rbErr != nil && s.Logger != nil {
				s.Logger.WithError(rbErr).WithFields(logrus.Fields{"event_id": eventID, "username": username}).Error("attendance rollback failed")
			}
		}
		return err
	}
	if !userAdded && !eventAdded {
		return nil
	}
	return s.recomputeTier(ctx, eventID)
}

// DetachAttendee removes the user from the event on both sides and
// recomputes the tier. As with AttachAttendee, both conditional deltas run
// unconditionally so a retry repairs whichever side a failed earlier call
// left behind. Detaching a non-attendee is a no-op.
func (s *EventService) DetachAttendee(ctx context.Context, eventID int64, username string) error {
	eventRemoved, err := s.Repo.RemoveAttendee(ctx, eventID, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	userRemoved, err := s.Users.RemoveAttendedEvent(ctx, username, eventID)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return err
	}
	if !eventRemoved && !userRemoved {
		return nil
	}
	return s.recomputeTier(ctx, eventID)
}

// AttachEndorser captures the named user's current points and level as an
// endorsement. Users below the sevak rank, and users already on the endorser
// list, leave the event unchanged.
func (s *EventService) AttachEndorser(ctx context.Context, eventID int64, username string) error {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if u.VerificationLevel < rank.EndorserFloor {
		return nil
	}
	added, err := s.Repo.AddEndorser(ctx, eventID, entity.Endorser{
		Username:          u.Username,
		Points:            u.Points,
		VerificationLevel: u.VerificationLevel,
	})
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	if !added {
		return nil
	}
	return s.recomputeTier(ctx, eventID)
}

// AttendingUsers resolves the attendee usernames of an event to full user
// records. Usernames that no longer resolve are skipped rather than failing
// the whole listing.
func (s *EventService) AttendingUsers(ctx context.Context, eventID int64) ([]*entity.User, error) {
	e, err := s.Repo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	users := make([]*entity.User, 0, len(e.UsersAttending))
	for _, name := range e.UsersAttending {
		u, uErr := s.Users.GetByUsername(ctx, name)
		if uErr != nil {
			if errors.Is(uErr, repo.ErrNotFound) {
				if s.Logger != nil {
					s.Logger.WithFields(logrus.Fields{"event_id": eventID, "username": name}).Warn("attendee no longer resolves")
				}
				continue
			}
			return nil, uErr
		}
		users = append(users, u)
	}
	return users, nil
}

// UpdateDetails rewrites an event's descriptive fields. Relationship lists
// and the tier are untouched.
func (s *EventService) UpdateDetails(ctx context.Context, id int64, loc entity.Location, date time.Time, description string) (*entity.Event, error) {
	e, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	e.Location = loc
	if !date.IsZero() {
		e.Date = date
	}
	if description != "" {
		e.Description = description
	}
	if err := s.Repo.Update(ctx, e); err != nil {
		return nil, err
	}
	s.index(ctx, e)
	return e, nil
}

// Remove deletes an event and detaches it from every attendee's event list.
func (s *EventService) Remove(ctx context.Context, id int64) error {
	e, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	for _, name := range e.UsersAttending {
		if _, dErr := s.Users.RemoveAttendedEvent(ctx, name, id); dErr != nil && !errors.Is(dErr, repo.ErrNotFound) && s.Logger != nil {
			s.Logger.WithError(dErr).WithFields(logrus.Fields{"event_id": id, "username": name}).Warn("attendee detach failed")
		}
	}
	s.deindex(ctx, id)
	if s.Logger != nil {
		s.Logger.WithField("event_id", id).Info("event removed")
	}
	return nil
}

// Search runs a full-text match over indexed event descriptions. Returns an
// empty slice when no index is configured.
func (s *EventService) Search(ctx context.Context, query string, size int) ([]*entity.Event, error) {
	if s.ES == nil {
		return []*entity.Event{}, nil
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	body := map[string]any{
		"size": size,
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  query,
				"fields": []string{"description", "center"},
			},
		},
	}
	buf, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	res, err := s.ES.Search(
		s.ES.Search.WithContext(ctx),
		s.ES.Search.WithIndex(s.searchIndex()),
		s.ES.Search.WithBody(bytes.NewReader(buf)),
	)
	if err != nil {
		return nil, fmt.Errorf("event search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("event search: %s", string(msg))
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source entity.Event `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]*entity.Event, 0, len(parsed.Hits.Hits))
	for i := range parsed.Hits.Hits {
		e := parsed.Hits.Hits[i].Source
		out = append(out, &e)
	}
	return out, nil
}

// recomputeTier re-reads the event and persists a freshly derived score.
func (s *EventService) recomputeTier(ctx context.Context, eventID int64) error {
	e, err := s.Repo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	score := tier.Score(e.Endorsers, e.PeopleAttending)
	if err := s.Repo.SetTier(ctx, eventID, score); err != nil {
		return err
	}
	e.Tier = score
	s.index(ctx, e)
	return nil
}

func (s *EventService) index(ctx context.Context, e *entity.Event) {
	if s.ES == nil {
		return
	}
	doc, err := json.Marshal(e)
	if err != nil {
		return
	}
	res, err := s.ES.Index(
		s.searchIndex(),
		bytes.NewReader(doc),
		s.ES.Index.WithContext(ctx),
		s.ES.Index.WithDocumentID(strconv.FormatInt(e.ID, 10)),
	)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("event_id", e.ID).Warn("event index failed")
		}
		return
	}
	res.Body.Close()
}

func (s *EventService) deindex(ctx context.Context, id int64) {
	if s.ES == nil {
		return
	}
	res, err := s.ES.Delete(
		s.searchIndex(),
		strconv.FormatInt(id, 10),
		s.ES.Delete.WithContext(ctx),
	)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("event_id", id).Warn("event deindex failed")
		}
		return
	}
	res.Body.Close()
}
