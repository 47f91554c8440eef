package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/safetydocs/pkg/domain/model"
	"github.com/secmon-lab/safetydocs/pkg/domain/policy"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

// importBatchSize bounds the writes of one import transaction. Firestore
// allows 500 writes per transaction, including the audit entry.
const importBatchSize = 200

type ParticipantUseCase struct {
	*base
}

type ParticipantInput struct {
	FirstName string
	LastName  string
	Email     string
	Company   string
	Position  string
}

func (in *ParticipantInput) normalize() error {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	in.Company = strings.TrimSpace(in.Company)
	in.Position = strings.TrimSpace(in.Position)

	if in.FirstName == "" {
		return invalid("first name is required", "first_name")
	}
	if in.LastName == "" {
		return invalid("last name is required", "last_name")
	}
	return nil
}

func (in *ParticipantInput) apply(p *model.Participant) {
	p.FirstName = in.FirstName
	p.LastName = in.LastName
	p.Email = in.Email
	p.Company = in.Company
	p.Position = in.Position
}

func (uc *ParticipantUseCase) List(ctx context.Context, projectID types.ProjectID) ([]*model.Participant, error) {
	if _, _, err := uc.authorizeProject(ctx, projectID, policy.KindContent, policy.ActionRead); err != nil {
		return nil, err
	}

	participants, err := uc.repo.Participant().ListByProject(ctx, projectID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list participants", goerr.V(ProjectIDKey, projectID))
	}
	return participants, nil
}

func (uc *ParticipantUseCase) Create(ctx context.Context, projectID types.ProjectID, in ParticipantInput) (*model.Participant, error) {
	_, actor, err := uc.authorizeProject(ctx, projectID, policy.KindContent, policy.ActionCreate)
	if err != nil {
		return nil, err
	}
	if err := in.normalize(); err != nil {
		return nil, err
	}

	now := uc.now()
	p := &model.Participant{
		ID:            types.NewParticipantID(),
		ProjectID:     projectID,
		SignatureType: types.SignaturePending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	in.apply(p)

	entry := uc.audit(actor, "create_participant", ResourceParticipant, p.ID.String(), projectID.String())
	if err := uc.commit(ctx, entry, func(ctx context.Context) error {
		return uc.repo.Participant().Put(ctx, p)
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to create participant", goerr.V(ProjectIDKey, projectID))
	}
	return p, nil
}

func (uc *ParticipantUseCase) Update(ctx context.Context, id types.ParticipantID, in ParticipantInput) (*model.Participant, error) {
	return uc.mutate(ctx, id, "update_participant", func(p *model.Participant) error {
		if err := in.normalize(); err != nil {
			return err
		}
		in.apply(p)
		return nil
	})
}

// Sign stores a digital signature
func (uc *ParticipantUseCase) Sign(ctx context.Context, id types.ParticipantID, data string) (*model.Participant, error) {
	return uc.mutate(ctx, id, "sign_participant", func(p *model.Participant) error {
		if strings.TrimSpace(data) == "" {
			return invalid("signature data is required", "signature_data")
		}
		p.SignDigital(data, uc.now())
		return nil
	})
}

// MarkAnalog records that the participant signed on paper
func (uc *ParticipantUseCase) MarkAnalog(ctx context.Context, id types.ParticipantID) (*model.Participant, error) {
	return uc.mutate(ctx, id, "sign_participant_analog", func(p *model.Participant) error {
		p.SignAnalog(uc.now())
		return nil
	})
}

func (uc *ParticipantUseCase) Delete(ctx context.Context, id types.ParticipantID) error {
	p, err := uc.repo.Participant().Get(ctx, id)
	if err != nil {
		return goerr.Wrap(err, "failed to get participant", goerr.V(ParticipantIDKey, id))
	}
	_, actor, err := uc.authorizeProject(ctx, p.ProjectID, policy.KindContent, policy.ActionDelete)
	if err != nil {
		return err
	}

	entry := uc.audit(actor, "delete_participant", ResourceParticipant, id.String(), p.ProjectID.String())
	if err := uc.commit(ctx, entry, func(ctx context.Context) error {
		return uc.repo.Participant().Delete(ctx, id)
	}); err != nil {
		return goerr.Wrap(err, "failed to delete participant", goerr.V(ParticipantIDKey, id))
	}
	return nil
}

func (uc *ParticipantUseCase) mutate(ctx context.Context, id types.ParticipantID, action string, fn func(p *model.Participant) error) (*model.Participant, error) {
	p, err := uc.repo.Participant().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get participant", goerr.V(ParticipantIDKey, id))
	}
	_, actor, err := uc.authorizeProject(ctx, p.ProjectID, policy.KindContent, policy.ActionUpdate)
	if err != nil {
		return nil, err
	}

	if err := fn(p); err != nil {
		return nil, err
	}
	p.UpdatedAt = uc.now()

	entry := uc.audit(actor, action, ResourceParticipant, id.String(), p.ProjectID.String())
	if err := uc.commit(ctx, entry, func(ctx context.Context) error {
		return uc.repo.Participant().Put(ctx, p)
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to save participant", goerr.V(ParticipantIDKey, id))
	}
	return p, nil
}

// ImportError describes a CSV row that was skipped
type ImportError struct {
	Line  int    `json:"line"`
	Error string `json:"error"`
}

type ImportResult struct {
	Created int           `json:"created"`
	Errors  []ImportError `json:"errors"`
}

var csvColumns = []string{"first_name", "last_name", "email", "position", "company"}

// Import reads participants from CSV. The header names the columns
// (first_name, last_name, email, position, company; any case, any order).
// Invalid rows are reported and skipped; valid rows are created.
func (uc *ParticipantUseCase) Import(ctx context.Context, projectID types.ProjectID, r io.Reader) (*ImportResult, error) {
	_, actor, err := uc.authorizeProject(ctx, projectID, policy.KindContent, policy.ActionCreate)
	if err != nil {
		return nil, err
	}

	rows, result, err := parseParticipantCSV(r)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	participants := make([]*model.Participant, len(rows))
	for i, in := range rows {
		participants[i] = &model.Participant{
			ID:              types.NewParticipantID(),
			ProjectID:       projectID,
			SignatureType:   types.SignaturePending,
			ImportedFromCSV: true,
			// distinct timestamps keep the file order
			CreatedAt: now.Add(time.Duration(i) * time.Microsecond),
			UpdatedAt: now,
		}
		in.apply(participants[i])
	}

	for start := 0; start < len(participants); start += importBatchSize {
		batch := participants[start:min(start+importBatchSize, len(participants))]
		detail := fmt.Sprintf("imported %d participants", len(batch))
		entry := uc.audit(actor, "import_participants_csv", ResourceParticipant, projectID.String(), detail)
		if err := uc.commit(ctx, entry, func(ctx context.Context) error {
			for _, p := range batch {
				if err := uc.repo.Participant().Put(ctx, p); err != nil {
					return err
				}
			}
			return nil
		}); err != nil {
			return nil, goerr.Wrap(err, "failed to import participants",
				goerr.V(ProjectIDKey, projectID), goerr.V("created", result.Created))
		}
		result.Created += len(batch)
	}

	return result, nil
}

func parseParticipantCSV(r io.Reader) ([]ParticipantInput, *ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, goerr.Wrap(ErrInvalidInput, "CSV is empty")
		}
		return nil, nil, goerr.Wrap(ErrInvalidInput, "failed to read CSV header", goerr.V("error", err.Error()))
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		index[name] = i
	}
	for _, required := range csvColumns[:2] {
		if _, ok := index[required]; !ok {
			return nil, nil, goerr.Wrap(ErrInvalidInput, "CSV header lacks required column", goerr.V("column", required))
		}
	}

	result := &ImportResult{Errors: []ImportError{}}
	var rows []ParticipantInput
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				result.Errors = append(result.Errors, ImportError{Line: pe.StartLine, Error: pe.Err.Error()})
				continue
			}
			return nil, nil, goerr.Wrap(err, "failed to read CSV")
		}

		line, _ := reader.FieldPos(0)
		field := func(name string) string {
			if i, ok := index[name]; ok && i < len(record) {
				return record[i]
			}
			return ""
		}

		in := ParticipantInput{
			FirstName: field("first_name"),
			LastName:  field("last_name"),
			Email:     field("email"),
			Position:  field("position"),
			Company:   field("company"),
		}
		if isBlank(record) {
			continue
		}
		if err := in.normalize(); err != nil {
			result.Errors = append(result.Errors, ImportError{Line: line, Error: missingNameMessage(in)})
			continue
		}
		rows = append(rows, in)
	}

	return rows, result, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func missingNameMessage(in ParticipantInput) string {
	if in.FirstName == "" {
		return "first_name is required"
	}
	return "last_name is required"
}
