package service

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/andrewhigh08/account-service/internal/domain"
	"github.com/andrewhigh08/account-service/internal/pkg/apperror"
	"github.com/andrewhigh08/account-service/internal/pkg/logger"
	"github.com/andrewhigh08/account-service/internal/port"
)

// categoryImageBound is the maximum edge length of a stored category image.
// categoryImageBound - максимальная длина стороны сохраняемого изображения.
const categoryImageBound = 800

// CategoryService implements port.CategoryService interface.
// CategoryService реализует интерфейс port.CategoryService.
//
// Category images are normalized to fit a fixed bounding box and stored
// on local disk as PNG; the row keeps only the file name.
// Изображения категорий нормализуются под фиксированную рамку и
// сохраняются на локальный диск как PNG; строка хранит только имя файла.
type CategoryService struct {
	categoryRepo port.CategoryRepository // Category repository / Репозиторий категорий
	imageDir     string                  // Image storage directory / Директория хранения изображений
	logger       *logger.Logger          // Logger instance / Экземпляр логгера
}

// NewCategoryService creates a new CategoryService instance.
// NewCategoryService создаёт новый экземпляр CategoryService.
func NewCategoryService(categoryRepo port.CategoryRepository, imageDir string, log *logger.Logger) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		imageDir:     imageDir,
		logger:       log.WithComponent("category_service"),
	}
}

// CreateCategory creates a category, normalizing the image when present.
// CreateCategory создаёт категорию, нормализуя изображение при наличии.
func (s *CategoryService) CreateCategory(ctx context.Context, name, url string, image []byte) error {
	log := s.logger.WithContext(ctx)

	category := &domain.Category{Name: name, URL: url}

	if len(image) > 0 {
		fileName, err := s.storeImage(image)
		if err != nil {
			return err
		}
		category.Image = &fileName
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if category.Image != nil {
			_ = os.Remove(filepath.Join(s.imageDir, *category.Image))
		}
		return err
	}

	log.Info("category created", "category_id", category.ID, "name", name)
	return nil
}

// GetCategory retrieves a category by id.
// GetCategory получает категорию по id.
func (s *CategoryService) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	return s.categoryRepo.FindByID(ctx, id)
}

// UpdateCategory updates a category and optionally replaces its image.
// UpdateCategory обновляет категорию и при необходимости заменяет изображение.
func (s *CategoryService) UpdateCategory(ctx context.Context, id int64, name, url string, image []byte) error {
	log := s.logger.WithContext(ctx)

	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	category.Name = name
	category.URL = url

	previous := category.Image
	if len(image) > 0 {
		fileName, storeErr := s.storeImage(image)
		if storeErr != nil {
			return storeErr
		}
		category.Image = &fileName
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		if len(image) > 0 && category.Image != nil {
			_ = os.Remove(filepath.Join(s.imageDir, *category.Image))
		}
		return err
	}

	if len(image) > 0 && previous != nil && *previous != "" {
		if rmErr := os.Remove(filepath.Join(s.imageDir, *previous)); rmErr != nil && !os.IsNotExist(rmErr) {
			log.Warn("failed to remove previous category image", "category_id", id, "error", rmErr)
		}
	}

	log.Info("category updated", "category_id", id)
	return nil
}

// DeleteCategory soft-deletes a category.
// DeleteCategory мягко удаляет категорию.
//
// Deleting an already deleted category is reported as a state error.
// Удаление уже удалённой категории считается ошибкой состояния.
func (s *CategoryService) DeleteCategory(ctx context.Context, id int64) error {
	log := s.logger.WithContext(ctx)

	category, err := s.categoryRepo.FindByIDUnscoped(ctx, id)
	if err != nil {
		if appErr, ok := apperror.AsAppError(err); ok && appErr.Code == apperror.CodeNotFound {
			return apperror.NotFound("Categoría no encontrada")
		}
		return err
	}
	if category.DeletedAt.Valid {
		return apperror.Forbidden("La categoría ya había sido eliminada")
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Info("category deleted", "category_id", id)
	return nil
}

// ListCategories retrieves categories with filtering and pagination.
// ListCategories получает категории с фильтрацией и пагинацией.
func (s *CategoryService) ListCategories(ctx context.Context, filter port.NameFilter) ([]domain.Category, int64, error) {
	return s.categoryRepo.List(ctx, filter)
}

// ListCategoriesSmall retrieves id/name/url triples ordered by name.
// ListCategoriesSmall получает тройки id/name/url, упорядоченные по имени.
func (s *CategoryService) ListCategoriesSmall(ctx context.Context) ([]domain.Category, error) {
	return s.categoryRepo.ListAll(ctx)
}

// ExportCategories renders every category into an XLSX workbook.
// ExportCategories выгружает все категории в книгу XLSX.
func (s *CategoryService) ExportCategories(ctx context.Context) ([]byte, error) {
	categories, err := s.categoryRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([][]interface{}, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, []interface{}{c.ID, c.Name, c.URL, c.CreatedAt.Format(time.DateOnly)})
	}

	return buildWorkbook("Categorías", []string{"ID", "Nombre", "URL", "Fecha de creación"}, rows)
}

// storeImage normalizes an uploaded image and writes it to disk.
// storeImage нормализует загруженное изображение и записывает его на диск.
//
// The image is shrunk to fit the bounding box, never enlarged, and always
// re-encoded as PNG so stored files are uniform.
// Изображение вписывается в рамку без увеличения и всегда перекодируется
// в PNG, чтобы сохранённые файлы были однородными.
func (s *CategoryService) storeImage(data []byte) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", apperror.BadRequest("Formato de imagen no permitido")
	}

	img = imaging.Fit(img, categoryImageBound, categoryImageBound, imaging.Lanczos)

	if err := os.MkdirAll(s.imageDir, 0o750); err != nil {
		return "", apperror.Internal("No fue posible guardar la imagen", err)
	}

	fileName := fmt.Sprintf("Category-%s.png", uuid.NewString())
	if err := imaging.Save(img, filepath.Join(s.imageDir, fileName)); err != nil {
		return "", apperror.Internal("No fue posible guardar la imagen", err)
	}

	return fileName, nil
}
