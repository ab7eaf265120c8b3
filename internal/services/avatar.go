package services

import (
  "bytes"
  "context"
  "fmt"
  "image/color"
  "math/rand"
  "os"
  "path/filepath"
  "strings"
  "time"
  "unicode"

  "github.com/fogleman/gg"
  "github.com/golang/freetype/truetype"
  "golang.org/x/image/font"
  "golang.org/x/image/font/gofont/goregular"
  "gorm.io/gorm"

  "github.com/matchwise/matchwise-backend/internal/logger"
  "github.com/matchwise/matchwise-backend/internal/repos"
  "github.com/matchwise/matchwise-backend/internal/types"
  "github.com/matchwise/matchwise-backend/internal/utils"
)

const avatarSize = 256

type AvatarService interface {
  CreateUserAvatar(ctx context.Context, tx *gorm.DB, user *types.User) error
  GenerateUserAvatar(user *types.User) (bytes.Buffer, error)
}

type avatarService struct {
  db       *gorm.DB
  log      *logger.Logger
  userRepo repos.UserRepo
  mediaDir string
  baseURL  string
  bgColors []color.NRGBA
  fontFace font.Face
}

func NewAvatarService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) (AvatarService, error) {
  serviceLog := log.With("service", "AvatarService")

  mediaDir := utils.GetEnv("MEDIA_DIR", "./media", log)
  if err := os.MkdirAll(filepath.Join(mediaDir, "user_avatar"), 0o755); err != nil {
    return nil, fmt.Errorf("could not create media dir: %w", err)
  }
  baseURL := strings.TrimRight(utils.GetEnv("MEDIA_BASE_URL", "/media", log), "/")

  ttf, err := truetype.Parse(goregular.TTF)
  if err != nil {
    return nil, fmt.Errorf("could not parse avatar font: %w", err)
  }
  face := truetype.NewFace(ttf, &truetype.Options{Size: avatarSize * 0.42})

  return &avatarService{
    db:       db,
    log:      serviceLog,
    userRepo: userRepo,
    mediaDir: mediaDir,
    baseURL:  baseURL,
    bgColors: []color.NRGBA{
      {R: 0x2E, G: 0x7D, B: 0x32, A: 0xFF},
      {R: 0x15, G: 0x65, B: 0xC0, A: 0xFF},
      {R: 0x6A, G: 0x1B, B: 0x9A, A: 0xFF},
      {R: 0xC6, G: 0x28, B: 0x28, A: 0xFF},
      {R: 0xEF, G: 0x6C, B: 0x00, A: 0xFF},
      {R: 0x00, G: 0x83, B: 0x8F, A: 0xFF},
    },
    fontFace: face,
  }, nil
}

func (as *avatarService) CreateUserAvatar(ctx context.Context, tx *gorm.DB, user *types.User) error {
  buf, err := as.GenerateUserAvatar(user)
  if err != nil {
    return err
  }

  key := filepath.Join("user_avatar", fmt.Sprintf("%s_%d.png", user.ID.String(), time.Now().UnixNano()))
  fullPath := filepath.Join(as.mediaDir, key)
  if err := os.WriteFile(fullPath, buf.Bytes(), 0o644); err != nil {
    return fmt.Errorf("failed to write user avatar: %w", err)
  }

  user.AvatarPath = key
  user.AvatarURL = as.baseURL + "/" + filepath.ToSlash(key)
  return nil
}

func (as *avatarService) GenerateUserAvatar(user *types.User) (bytes.Buffer, error) {
  var buf bytes.Buffer
  if user == nil {
    return buf, fmt.Errorf("No user given for avatar generation")
  }

  dc := gg.NewContext(avatarSize, avatarSize)
  bg := as.bgColors[rand.Intn(len(as.bgColors))]
  dc.SetColor(bg)
  dc.Clear()

  dc.SetFontFace(as.fontFace)
  dc.SetColor(color.White)
  initials := userInitials(user)
  dc.DrawStringAnchored(initials, avatarSize/2, avatarSize/2, 0.5, 0.5)

  if err := dc.EncodePNG(&buf); err != nil {
    return buf, fmt.Errorf("failed to encode avatar png: %w", err)
  }
  return buf, nil
}

func userInitials(user *types.User) string {
  first := firstLetter(user.FirstName)
  last := firstLetter(user.LastName)
  initials := first + last
  if initials == "" {
    initials = "?"
  }
  return initials
}

func firstLetter(s string) string {
  for _, r := range strings.TrimSpace(s) {
    return string(unicode.ToUpper(r))
  }
  return ""
}
