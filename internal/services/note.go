package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/seabloom/tidewed-backend/internal/apierr"
	"github.com/seabloom/tidewed-backend/internal/logger"
	"github.com/seabloom/tidewed-backend/internal/normalization"
	"github.com/seabloom/tidewed-backend/internal/realtime"
	"github.com/seabloom/tidewed-backend/internal/repos"
	"github.com/seabloom/tidewed-backend/internal/types"
)

type NoteService interface {
	List(ctx context.Context, userID uuid.UUID) ([]*types.Note, error)
	Create(ctx context.Context, userID uuid.UUID, content string) (*types.Note, error)
	Update(ctx context.Context, userID, noteID uuid.UUID, content string) (*types.Note, error)
	Delete(ctx context.Context, userID, noteID uuid.UUID) error
}

type noteService struct {
	db             *gorm.DB
	log            *logger.Logger
	noteRepo       repos.NoteRepo
	weddingService WeddingService
	notifier       NotifierService
}

func NewNoteService(
	db *gorm.DB,
	log *logger.Logger,
	noteRepo repos.NoteRepo,
	weddingService WeddingService,
	notifier NotifierService,
) NoteService {
	serviceLog := log.With("service", "NoteService")
	return &noteService{
		db:             db,
		log:            serviceLog,
		noteRepo:       noteRepo,
		weddingService: weddingService,
		notifier:       notifier,
	}
}

func (ns *noteService) List(ctx context.Context, userID uuid.UUID) ([]*types.Note, error) {
	wedding, err := ns.weddingService.ResolveForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	notes, lErr := ns.noteRepo.ListByWeddingID(ctx, nil, wedding.ID, "")
	if lErr != nil {
		return nil, fmt.Errorf("failed to list notes: %w", lErr)
	}
	return notes, nil
}

func (ns *noteService) Create(ctx context.Context, userID uuid.UUID, content string) (*types.Note, error) {
	wedding, err := ns.weddingService.ResolveForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	content = normalization.TrimInputString(content)
	if content == "" {
		return nil, apierr.InvalidInput("note content is required")
	}
	note := &types.Note{
		ID:        uuid.New(),
		WeddingID: wedding.ID,
		AuthorID:  userID,
		Content:   content,
	}
	if _, cErr := ns.noteRepo.Create(ctx, nil, []*types.Note{note}); cErr != nil {
		return nil, cErr
	}
	ns.publishChange(ctx, wedding.ID, note)
	return note, nil
}

func (ns *noteService) Update(ctx context.Context, userID, noteID uuid.UUID, content string) (*types.Note, error) {
	wedding, err := ns.getOwnedWedding(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}
	content = normalization.TrimInputString(content)
	if content == "" {
		return nil, apierr.InvalidInput("note content is required")
	}
	if uErr := ns.noteRepo.UpdateByID(ctx, nil, noteID, map[string]interface{}{"content": content}); uErr != nil {
		return nil, uErr
	}
	refreshed, gErr := ns.noteRepo.GetByIDs(ctx, nil, []uuid.UUID{noteID})
	if gErr != nil {
		return nil, fmt.Errorf("failed to re-fetch note after update: %w", gErr)
	}
	if len(refreshed) == 0 {
		return nil, apierr.NotFound("note %s not found", noteID)
	}
	ns.publishChange(ctx, wedding.ID, refreshed[0])
	return refreshed[0], nil
}

func (ns *noteService) Delete(ctx context.Context, userID, noteID uuid.UUID) error {
	wedding, err := ns.getOwnedWedding(ctx, userID, noteID)
	if err != nil {
		return err
	}
	if dErr := ns.noteRepo.FullDeleteByIDs(ctx, nil, []uuid.UUID{noteID}); dErr != nil {
		return fmt.Errorf("failed to delete note: %w", dErr)
	}
	ns.publishChange(ctx, wedding.ID, map[string]any{"id": noteID, "deleted": true})
	return nil
}

func (ns *noteService) getOwnedWedding(ctx context.Context, userID, noteID uuid.UUID) (*types.Wedding, error) {
	wedding, err := ns.weddingService.ResolveForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	notes, gErr := ns.noteRepo.GetByIDs(ctx, nil, []uuid.UUID{noteID})
	if gErr != nil {
		return nil, fmt.Errorf("failed to look up note %s: %w", noteID, gErr)
	}
	if len(notes) == 0 || notes[0].WeddingID != wedding.ID {
		return nil, apierr.NotFound("note %s not found", noteID)
	}
	return wedding, nil
}

func (ns *noteService) publishChange(ctx context.Context, weddingID uuid.UUID, data any) {
	if ns.notifier != nil {
		ns.notifier.PublishTableChange(ctx, types.Note{}.TableName(), weddingID, realtime.SSEEventNoteChanged, data)
	}
}
