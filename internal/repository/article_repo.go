package repository

import (
	"context"

	"anoa.com/schoolboard/internal/model"
	"gorm.io/gorm"
)

type ArticleRepository interface {
	Create(ctx context.Context, article *model.Article) error
	FindByID(ctx context.Context, id uint) (*model.Article, error)
	FindAll(ctx context.Context) ([]*model.Article, error)
	FindByAuthor(ctx context.Context, authorID uint) ([]*model.Article, error)
	FindOwnByID(ctx context.Context, id, authorID uint) (*model.Article, error)
	FindStudentArticles(ctx context.Context, teacherUserID uint) ([]*model.Article, error)
	FindStudentArticleByID(ctx context.Context, teacherUserID, articleID uint) (*model.Article, error)
	Delete(ctx context.Context, id uint) error
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(ctx context.Context, article *model.Article) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(article).Error
	})
}

func (r *articleRepository) FindByID(ctx context.Context, id uint) (*model.Article, error) {
	var article model.Article
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("id = ?", id).
		First(&article).Error; err != nil {
		return nil, err
	}

	return &article, nil
}

func (r *articleRepository) FindAll(ctx context.Context) ([]*model.Article, error) {
	var articles []*model.Article
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC").
		Find(&articles).Error; err != nil {
		return nil, err
	}

	return articles, nil
}

func (r *articleRepository) FindByAuthor(ctx context.Context, authorID uint) ([]*model.Article, error) {
	var articles []*model.Article
	if err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&articles).Error; err != nil {
		return nil, err
	}

	return articles, nil
}

func (r *articleRepository) FindOwnByID(ctx context.Context, id, authorID uint) (*model.Article, error) {
	var article model.Article
	if err := r.db.WithContext(ctx).
		Where("id = ? AND author_id = ?", id, authorID).
		First(&article).Error; err != nil {
		return nil, err
	}

	return &article, nil
}

// studentArticles scopes articles to those authored by students linked to
// the teacher through the teacher_students join, keyed by the teacher's
// user id.
func (r *articleRepository) studentArticles(ctx context.Context, teacherUserID uint) *gorm.DB {
	return r.db.WithContext(ctx).
		Joins("JOIN student_profiles ON student_profiles.user_id = articles.author_id").
		Joins("JOIN teacher_students ON teacher_students.student_profile_id = student_profiles.id").
		Joins("JOIN teacher_profiles ON teacher_profiles.id = teacher_students.teacher_profile_id").
		Where("teacher_profiles.user_id = ?", teacherUserID)
}

func (r *articleRepository) FindStudentArticles(ctx context.Context, teacherUserID uint) ([]*model.Article, error) {
	var articles []*model.Article
	if err := r.studentArticles(ctx, teacherUserID).
		Order("articles.created_at DESC").
		Find(&articles).Error; err != nil {
		return nil, err
	}

	return articles, nil
}

func (r *articleRepository) FindStudentArticleByID(ctx context.Context, teacherUserID, articleID uint) (*model.Article, error) {
	var article model.Article
	if err := r.studentArticles(ctx, teacherUserID).
		Where("articles.id = ?", articleID).
		First(&article).Error; err != nil {
		return nil, err
	}

	return &article, nil
}

func (r *articleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Article{}, "id = ?", id).Error
}
