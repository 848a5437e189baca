package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/seabloom/tidewed-backend/internal/apierr"
	"github.com/seabloom/tidewed-backend/internal/logger"
	"github.com/seabloom/tidewed-backend/internal/normalization"
	"github.com/seabloom/tidewed-backend/internal/realtime"
	"github.com/seabloom/tidewed-backend/internal/repos"
	"github.com/seabloom/tidewed-backend/internal/types"
)

type InspirationCreateInput struct {
	ImageURL string
	Category string
	Note     string
}

// InspirationService manages the mood board. Entries either reference an
// external image by URL or carry an uploaded image stored under
// moodboard/<weddingID>/ in the bucket.
type InspirationService interface {
	List(ctx context.Context, userID uuid.UUID) ([]*types.Inspiration, error)
	Create(ctx context.Context, userID uuid.UUID, input InspirationCreateInput) (*types.Inspiration, error)
	Upload(ctx context.Context, userID uuid.UUID, filename string, file io.Reader, category, note string) (*types.Inspiration, error)
	Update(ctx context.Context, userID, inspirationID uuid.UUID, updates map[string]interface{}) (*types.Inspiration, error)
	Delete(ctx context.Context, userID, inspirationID uuid.UUID) error
}

type inspirationService struct {
	db              *gorm.DB
	log             *logger.Logger
	inspirationRepo repos.InspirationRepo
	weddingService  WeddingService
	bucketService   BucketService
	notifier        NotifierService
}

func NewInspirationService(
	db *gorm.DB,
	log *logger.Logger,
	inspirationRepo repos.InspirationRepo,
	weddingService WeddingService,
	bucketService BucketService,
	notifier NotifierService,
) InspirationService {
	serviceLog := log.With("service", "InspirationService")
	return &inspirationService{
		db:              db,
		log:             serviceLog,
		inspirationRepo: inspirationRepo,
		weddingService:  weddingService,
		bucketService:   bucketService,
		notifier:        notifier,
	}
}

func (is *inspirationService) List(ctx context.Context, userID uuid.UUID) ([]*types.Inspiration, error) {
	wedding, err := is.weddingService.ResolveForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	inspirations, lErr := is.inspirationRepo.ListByWeddingID(ctx, nil, wedding.ID, "")
	if lErr != nil {
		return nil, fmt.Errorf("failed to list inspirations: %w", lErr)
	}
	return inspirations, nil
}

func (is *inspirationService) Create(ctx context.Context, userID uuid.UUID, input InspirationCreateInput) (*types.Inspiration, error) {
	wedding, err := is.weddingService.ResolveForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	imageURL := normalization.TrimInputString(input.ImageURL)
	if imageURL == "" {
		return nil, apierr.InvalidInput("image url is required")
	}
	inspiration := &types.Inspiration{
		ID:        uuid.New(),
		WeddingID: wedding.ID,
		ImageURL:  imageURL,
		Category:  normalization.TrimInputString(input.Category),
		Note:      normalization.TrimInputString(input.Note),
		SavedBy:   userID,
	}
	if _, cErr := is.inspirationRepo.Create(ctx, nil, []*types.Inspiration{inspiration}); cErr != nil {
		return nil, cErr
	}
	is.publishChange(ctx, wedding.ID, inspiration)
	return inspiration, nil
}

func (is *inspirationService) Upload(ctx context.Context, userID uuid.UUID, filename string, file io.Reader, category, note string) (*types.Inspiration, error) {
	wedding, err := is.weddingService.ResolveForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if is.bucketService == nil {
		return nil, apierr.StorageUnavailable(fmt.Errorf("object storage is not configured"))
	}
	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
	default:
		return nil, apierr.InvalidInput("unsupported image type %q", ext)
	}
	key := fmt.Sprintf("moodboard/%s/%d%s", wedding.ID, time.Now().UnixNano(), ext)
	if uErr := is.bucketService.UploadFile(ctx, key, file); uErr != nil {
		return nil, apierr.StorageUnavailable(uErr)
	}
	inspiration := &types.Inspiration{
		ID:             uuid.New(),
		WeddingID:      wedding.ID,
		ImageURL:       is.bucketService.GetPublicURL(key),
		ImageBucketKey: key,
		Category:       normalization.TrimInputString(category),
		Note:           normalization.TrimInputString(note),
		SavedBy:        userID,
	}
	if _, cErr := is.inspirationRepo.Create(ctx, nil, []*types.Inspiration{inspiration}); cErr != nil {
		// Row creation failed after the upload; drop the orphan object.
		if dErr := is.bucketService.DeleteFile(ctx, key); dErr != nil {
			is.log.Warn("Failed to clean up orphaned mood board object", "key", key, "error", dErr)
		}
		return nil, cErr
	}
	is.publishChange(ctx, wedding.ID, inspiration)
	return inspiration, nil
}

func (is *inspirationService) Update(ctx context.Context, userID, inspirationID uuid.UUID, updates map[string]interface{}) (*types.Inspiration, error) {
	wedding, _, err := is.getOwned(ctx, userID, inspirationID)
	if err != nil {
		return nil, err
	}
	if uErr := is.inspirationRepo.UpdateByID(ctx, nil, inspirationID, updates); uErr != nil {
		return nil, uErr
	}
	refreshed, gErr := is.inspirationRepo.GetByIDs(ctx, nil, []uuid.UUID{inspirationID})
	if gErr != nil {
		return nil, fmt.Errorf("failed to re-fetch inspiration after update: %w", gErr)
	}
	if len(refreshed) == 0 {
		return nil, apierr.NotFound("inspiration %s not found", inspirationID)
	}
	is.publishChange(ctx, wedding.ID, refreshed[0])
	return refreshed[0], nil
}

func (is *inspirationService) Delete(ctx context.Context, userID, inspirationID uuid.UUID) error {
	wedding, inspiration, err := is.getOwned(ctx, userID, inspirationID)
	if err != nil {
		return err
	}
	if dErr := is.inspirationRepo.FullDeleteByIDs(ctx, nil, []uuid.UUID{inspirationID}); dErr != nil {
		return fmt.Errorf("failed to delete inspiration: %w", dErr)
	}
	if inspiration.ImageBucketKey != "" && is.bucketService != nil {
		if bErr := is.bucketService.DeleteFile(ctx, inspiration.ImageBucketKey); bErr != nil {
			is.log.Warn("Failed to delete mood board object", "key", inspiration.ImageBucketKey, "error", bErr)
		}
	}
	is.publishChange(ctx, wedding.ID, map[string]any{"id": inspirationID, "deleted": true})
	return nil
}

func (is *inspirationService) getOwned(ctx context.Context, userID, inspirationID uuid.UUID) (*types.Wedding, *types.Inspiration, error) {
	wedding, err := is.weddingService.ResolveForUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	inspirations, gErr := is.inspirationRepo.GetByIDs(ctx, nil, []uuid.UUID{inspirationID})
	if gErr != nil {
		return nil, nil, fmt.Errorf("failed to look up inspiration %s: %w", inspirationID, gErr)
	}
	if len(inspirations) == 0 || inspirations[0].WeddingID != wedding.ID {
		return nil, nil, apierr.NotFound("inspiration %s not found", inspirationID)
	}
	return wedding, inspirations[0], nil
}

func (is *inspirationService) publishChange(ctx context.Context, weddingID uuid.UUID, data any) {
	if is.notifier != nil {
		is.notifier.PublishTableChange(ctx, types.Inspiration{}.TableName(), weddingID, realtime.SSEEventInspirationChanged, data)
	}
}
