package service

import (
	"context"
	"eduflex_backend/internal/config"
	"eduflex_backend/internal/model"
	"eduflex_backend/internal/repository"
	"eduflex_backend/internal/util"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ModuleInput is one module of a multipart course payload. Media files are
// optional and arrive as separate form parts keyed by module index.
type ModuleInput struct {
	Name    string
	Content string
	Image   *multipart.FileHeader
	Video   *multipart.FileHeader
}

type CourseService struct {
	CourseRepo *repository.CourseRepository
	Storage    *StorageService
	Cfg        *config.Config
}

func NewCourseService(courseRepo *repository.CourseRepository, storage *StorageService, cfg *config.Config) *CourseService {
	return &CourseService{
		CourseRepo: courseRepo,
		Storage:    storage,
		Cfg:        cfg,
	}
}

// CreateCourse stores the course with its ordered modules, uploading any
// attached media first so module rows carry final URLs.
func (s *CourseService) CreateCourse(ctx context.Context, instructorID uint, title, description string, inputs []ModuleInput) (*model.Course, error) {
	modules := make([]model.CourseModule, 0, len(inputs))
	for i, in := range inputs {
		mod := model.CourseModule{
			Name:     in.Name,
			Content:  in.Content,
			Position: i,
		}
		if err := s.attachMedia(ctx, &mod, in); err != nil {
			return nil, err
		}
		modules = append(modules, mod)
	}

	course := &model.Course{
		Title:       title,
		Description: description,
		CreatedBy:   instructorID,
		Modules:     modules,
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) GetCourse(id uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) ListCourses() ([]model.Course, error) {
	return s.CourseRepo.FindAll()
}

// UpdateCourse replaces the course's metadata and module list. Only the
// owning instructor or an admin may touch it.
func (s *CourseService) UpdateCourse(ctx context.Context, caller *util.Claims, courseID uint, title, description string, inputs []ModuleInput) (*model.Course, error) {
	course, err := s.GetCourse(courseID)
	if err != nil {
		return nil, err
	}
	if course.CreatedBy != caller.UserID && caller.Role != model.Admin {
		return nil, util.ErrPermissionDenied
	}

	course.Title = title
	course.Description = description

	modules := make([]model.CourseModule, 0, len(inputs))
	for i, in := range inputs {
		mod := model.CourseModule{
			Name:     in.Name,
			Content:  in.Content,
			Position: i,
		}
		if err := s.attachMedia(ctx, &mod, in); err != nil {
			return nil, err
		}
		modules = append(modules, mod)
	}

	if err := s.CourseRepo.Update(course, modules); err != nil {
		return nil, err
	}
	return s.GetCourse(courseID)
}

// DeleteCourse removes the course and cascades to modules, every student's
// progress record and the course's quizzes with their attempts.
func (s *CourseService) DeleteCourse(caller *util.Claims, courseID uint) error {
	course, err := s.GetCourse(courseID)
	if err != nil {
		return err
	}
	if course.CreatedBy != caller.UserID && caller.Role != model.Admin {
		return util.ErrPermissionDenied
	}
	return s.CourseRepo.Delete(courseID)
}

func (s *CourseService) attachMedia(ctx context.Context, mod *model.CourseModule, in ModuleInput) error {
	if in.Image != nil {
		url, mimeType, err := s.uploadImage(ctx, in.Image)
		if err != nil {
			return err
		}
		mod.ImageURL = url
		mod.ContentType = mimeType
	}
	if in.Video != nil {
		url, mimeType, duration, err := s.uploadVideo(ctx, in.Video)
		if err != nil {
			return err
		}
		mod.VideoURL = url
		mod.VideoDuration = duration
		mod.ContentType = mimeType
	}
	return nil
}

func (s *CourseService) uploadImage(ctx context.Context, file *multipart.FileHeader) (string, string, error) {
	src, err := file.Open()
	if err != nil {
		return "", "", err
	}
	defer src.Close()

	mimeType, err := util.ValidateMimeType(src, []string{util.MimeImage})
	if err != nil {
		return "", "", fmt.Errorf("module image rejected: %v", err)
	}
	if seeker, ok := src.(io.Seeker); ok {
		seeker.Seek(0, io.SeekStart)
	}

	filename := "images/" + uuid.New().String() + strings.ToLower(filepath.Ext(file.Filename))
	url, err := s.Storage.Upload(ctx, filename, src, file.Size, mimeType)
	if err != nil {
		return "", "", err
	}
	return url, mimeType, nil
}

// uploadVideo spools the upload to a temp file so ffprobe can read its
// duration, then ships it to storage.
func (s *CourseService) uploadVideo(ctx context.Context, file *multipart.FileHeader) (string, string, float64, error) {
	src, err := file.Open()
	if err != nil {
		return "", "", 0, err
	}
	defer src.Close()

	mimeType, err := util.ValidateMimeType(src, []string{util.MimeVideo})
	if err != nil {
		return "", "", 0, fmt.Errorf("module video rejected: %v", err)
	}
	if seeker, ok := src.(io.Seeker); ok {
		seeker.Seek(0, io.SeekStart)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))

	tempDir := filepath.Join(s.Cfg.Storage.LocalPath, "temp")
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return "", "", 0, err
	}
	tempPath := filepath.Join(tempDir, fmt.Sprintf("upload_%d%s", time.Now().UnixNano(), ext))
	defer os.Remove(tempPath)

	dst, err := os.Create(tempPath)
	if err != nil {
		return "", "", 0, err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", "", 0, err
	}
	dst.Close()

	var duration float64
	if info, err := util.GetVideoInfo(tempPath); err == nil {
		duration = info.Duration
	}

	filename := "videos/" + uuid.New().String() + ext
	url, err := s.Storage.UploadFile(ctx, filename, tempPath, mimeType)
	if err != nil {
		return "", "", 0, err
	}
	return url, mimeType, duration, nil
}
