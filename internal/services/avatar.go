package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"math/rand"
	"os"
	"strings"
	"time"

	_ "image/jpeg"
	_ "image/png"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"gorm.io/gorm"

	"github.com/seabloom/tidewed-backend/internal/logger"
	"github.com/seabloom/tidewed-backend/internal/types"
)

type AvatarService interface {
	CreateAndUploadUserAvatar(ctx context.Context, tx *gorm.DB, user *types.User) error
	CreateAndUploadUserAvatarFromImage(ctx context.Context, tx *gorm.DB, user *types.User, raw []byte) error
	GenerateUserAvatar(user *types.User) (bytes.Buffer, error)
}

type avatarService struct {
	log           *logger.Logger
	bucketService BucketService
	bgColors      []color.NRGBA
	fontFace      font.Face
}

// Soft pastels in the app's palette.
var defaultAvatarColors = []color.NRGBA{
	{R: 0x2E, G: 0x8B, B: 0x84, A: 0xFF},
	{R: 0xE8, G: 0xB4, B: 0x6B, A: 0xFF},
	{R: 0x6B, G: 0x9A, B: 0xC4, A: 0xFF},
	{R: 0xC4, G: 0x6B, B: 0x8E, A: 0xFF},
	{R: 0x8E, G: 0x6B, B: 0xC4, A: 0xFF},
}

func NewAvatarService(log *logger.Logger, bucketService BucketService) (AvatarService, error) {
	serviceLog := log.With("service", "AvatarService")

	fontPath := os.Getenv("AVATAR_FONT")
	if strings.TrimSpace(fontPath) == "" {
		return nil, fmt.Errorf("env var AVATAR_FONT is empty")
	}
	serviceLog.Info("Loading avatar font", "font", fontPath)

	face, err := loadFontFace(fontPath, 206)
	if err != nil {
		return nil, fmt.Errorf("could not load avatar font: %w", err)
	}

	return &avatarService{
		log:           serviceLog,
		bucketService: bucketService,
		bgColors:      defaultAvatarColors,
		fontFace:      face,
	}, nil
}

func (as *avatarService) CreateAndUploadUserAvatar(ctx context.Context, tx *gorm.DB, user *types.User) error {
	buf, err := as.GenerateUserAvatar(user)
	if err != nil {
		return err
	}

	oldKey := strings.TrimSpace(user.AvatarBucketKey)

	// Versioned key so CDN/browser caches never serve a stale avatar.
	newKey := fmt.Sprintf("user_avatar/%s/%d.png", user.ID.String(), time.Now().UnixNano())

	if err := as.bucketService.UploadFile(ctx, newKey, bytes.NewReader(buf.Bytes())); err != nil {
		return fmt.Errorf("failed to upload user avatar: %w", err)
	}

	user.AvatarBucketKey = newKey
	user.AvatarURL = as.bucketService.GetPublicURL(newKey)

	// Best-effort delete of the old object once the new one is in place.
	if oldKey != "" && oldKey != newKey {
		if err := as.bucketService.DeleteFile(ctx, oldKey); err != nil {
			as.log.Warn("failed to delete old avatar (ignored)", "oldKey", oldKey, "error", err)
		}
	}

	return nil
}

func (as *avatarService) GenerateUserAvatar(user *types.User) (bytes.Buffer, error) {
	const size = 512

	dc := gg.NewContext(size, size)

	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.Clip()

	base := as.bgColors[rand.Intn(len(as.bgColors))]
	dc.SetColor(base)
	dc.DrawRectangle(0, 0, float64(size), float64(size))
	dc.Fill()

	initials := computeInitials(user.FullName)

	dc.SetFontFace(as.fontFace)
	tw, th := dc.MeasureString(initials)
	cx, cy := float64(size)/2, float64(size)/2

	dc.SetColor(color.White)
	dc.DrawString(initials, cx-(tw/2)+5, cy+(th/2)-10)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return buf, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf, nil
}

func (as *avatarService) CreateAndUploadUserAvatarFromImage(ctx context.Context, tx *gorm.DB, user *types.User, raw []byte) error {
	if user == nil || user.ID == uuid.Nil {
		return fmt.Errorf("user required")
	}

	processed, err := processUploadedAvatar(raw, 512)
	if err != nil {
		return err
	}

	oldKey := strings.TrimSpace(user.AvatarBucketKey)
	newKey := fmt.Sprintf("user_avatar/%s/%d.png", user.ID.String(), time.Now().UnixNano())

	if err := as.bucketService.UploadFile(ctx, newKey, bytes.NewReader(processed.Bytes())); err != nil {
		return fmt.Errorf("failed to upload user avatar: %w", err)
	}

	user.AvatarBucketKey = newKey
	user.AvatarURL = as.bucketService.GetPublicURL(newKey)

	if oldKey != "" && oldKey != newKey {
		if err := as.bucketService.DeleteFile(ctx, oldKey); err != nil {
			as.log.Warn("failed to delete old avatar (ignored)", "oldKey", oldKey, "error", err)
		}
	}

	return nil
}

func processUploadedAvatar(raw []byte, size int) (bytes.Buffer, error) {
	var out bytes.Buffer

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return out, fmt.Errorf("decode image: %w", err)
	}

	// Center-crop to square
	b := img.Bounds()
	w := b.Dx()
	h := b.Dy()
	side := w
	if h < w {
		side = h
	}
	x0 := b.Min.X + (w-side)/2
	y0 := b.Min.Y + (h-side)/2

	cropRect := image.Rect(0, 0, side, side)
	cropped := image.NewRGBA(cropRect)
	draw.Draw(cropped, cropRect, img, image.Point{X: x0, Y: y0}, draw.Src)

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), cropped, cropped.Bounds(), draw.Over, nil)

	dc := gg.NewContext(size, size)
	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.Clip()
	dc.DrawImage(dst, 0, 0)

	if err := dc.EncodePNG(&out); err != nil {
		return out, fmt.Errorf("encode png: %w", err)
	}

	return out, nil
}

func computeInitials(fullName string) string {
	parts := strings.Fields(strings.TrimSpace(fullName))
	switch len(parts) {
	case 0:
		return "?"
	case 1:
		return strings.ToUpper(parts[0][:1])
	default:
		return strings.ToUpper(parts[0][:1]) + strings.ToUpper(parts[len(parts)-1][:1])
	}
}

func loadFontFace(fontPath string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	face := truetype.NewFace(parsedFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	return face, nil
}
