package service

import (
	"context"
	"errors"
	"fmt"

	"anoa.com/schoolboard/internal/dto"
	"anoa.com/schoolboard/internal/model"
	"anoa.com/schoolboard/internal/repository"
	"anoa.com/schoolboard/pkg/apperror"
	"anoa.com/schoolboard/pkg/storage"
	"gorm.io/gorm"
)

var allowedCoverTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
}

type ArticleService interface {
	Create(ctx context.Context, author *model.User, input dto.CreateArticleInput, cover *dto.CoverFile) (*model.Article, error)
	GetAll(ctx context.Context) ([]*model.Article, error)
	GetOwn(ctx context.Context, user *model.User) ([]*model.Article, error)
	GetOwnByID(ctx context.Context, user *model.User, id uint) (*model.Article, error)
	GetStudentArticles(ctx context.Context, teacher *model.User) ([]*model.Article, error)
	GetStudentArticleByID(ctx context.Context, teacher *model.User, id uint) (*model.Article, error)
	DeleteOwn(ctx context.Context, user *model.User, id uint) error
	Delete(ctx context.Context, id uint) error
}

type articleService struct {
	repo        repository.ArticleRepository
	fileStorage storage.FileStorage
}

func NewArticleService(repo repository.ArticleRepository, fileStorage storage.FileStorage) ArticleService {
	return &articleService{
		repo:        repo,
		fileStorage: fileStorage,
	}
}

func (s *articleService) Create(ctx context.Context, author *model.User, input dto.CreateArticleInput, cover *dto.CoverFile) (*model.Article, error) {
	article := &model.Article{
		Title:    input.Title,
		Content:  input.Content,
		AuthorID: author.ID,
	}

	if cover != nil && cover.Size > 0 {
		ref, err := s.fileStorage.Store(ctx, cover.Reader, cover.FileName)
		if err != nil {
			return nil, err
		}
		article.CoverImage = &ref

		// The content-type check runs after the file is stored; a
		// rejected upload leaves the stored file behind.
		if !allowedCoverTypes[cover.ContentType] {
			return nil, fmt.Errorf("cover image must be a png or jpeg: %w", apperror.ErrInvalidInput)
		}
	}

	if err := s.repo.Create(ctx, article); err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, article.ID)
}

func (s *articleService) GetAll(ctx context.Context) ([]*model.Article, error) {
	return s.repo.FindAll(ctx)
}

func (s *articleService) GetOwn(ctx context.Context, user *model.User) ([]*model.Article, error) {
	return s.repo.FindByAuthor(ctx, user.ID)
}

func (s *articleService) GetOwnByID(ctx context.Context, user *model.User, id uint) (*model.Article, error) {
	article, err := s.repo.FindOwnByID(ctx, id, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Articles outside the caller's scope read as absent, not
			// forbidden.
			return nil, fmt.Errorf("article not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	return article, nil
}

func (s *articleService) GetStudentArticles(ctx context.Context, teacher *model.User) ([]*model.Article, error) {
	return s.repo.FindStudentArticles(ctx, teacher.ID)
}

func (s *articleService) GetStudentArticleByID(ctx context.Context, teacher *model.User, id uint) (*model.Article, error) {
	article, err := s.repo.FindStudentArticleByID(ctx, teacher.ID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("article not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	return article, nil
}

func (s *articleService) DeleteOwn(ctx context.Context, user *model.User, id uint) error {
	article, err := s.GetOwnByID(ctx, user, id)
	if err != nil {
		return err
	}

	return s.repo.Delete(ctx, article.ID)
}

func (s *articleService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("article not found: %w", apperror.ErrNotFound)
		}
		return err
	}

	return s.repo.Delete(ctx, id)
}
