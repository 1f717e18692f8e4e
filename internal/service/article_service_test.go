package service_test

import (
	"context"
	"strings"
	"testing"

	"anoa.com/schoolboard/internal/dto"
	"anoa.com/schoolboard/internal/model"
	"anoa.com/schoolboard/internal/repository"
	"anoa.com/schoolboard/internal/service"
	"anoa.com/schoolboard/pkg/apperror"
	"anoa.com/schoolboard/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newArticleService(t *testing.T, db *gorm.DB) service.ArticleService {
	t.Helper()

	fileStorage, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	return service.NewArticleService(repository.NewArticleRepository(db), fileStorage)
}

func pngCover(name string) *dto.CoverFile {
	content := "fake image bytes"
	return &dto.CoverFile{
		Reader:      strings.NewReader(content),
		FileName:    name,
		ContentType: "image/png",
		Size:        int64(len(content)),
	}
}

func TestCreateArticleWithoutCover(t *testing.T) {
	db := newTestDB(t)
	teacher := createTeacherUser(t, db, "teacher@example.com")
	svc := newArticleService(t, db)

	article, err := svc.Create(context.Background(), teacher, dto.CreateArticleInput{
		Title:   "Term plan",
		Content: "Lots of homework.",
	}, nil)
	require.NoError(t, err)

	assert.Nil(t, article.CoverImage)
	assert.Equal(t, teacher.ID, article.AuthorID)
	assert.False(t, article.CreatedAt.IsZero())
}

func TestCreateArticleWithPNGCover(t *testing.T) {
	db := newTestDB(t)
	teacher := createTeacherUser(t, db, "teacher@example.com")
	svc := newArticleService(t, db)

	article, err := svc.Create(context.Background(), teacher, dto.CreateArticleInput{
		Title:   "Field trip",
		Content: "We saw ducks.",
	}, pngCover("ducks.png"))
	require.NoError(t, err)

	require.NotNil(t, article.CoverImage)
	assert.Contains(t, *article.CoverImage, "ducks.png")
}

func TestCreateArticleRejectsNonImageCover(t *testing.T) {
	db := newTestDB(t)
	teacher := createTeacherUser(t, db, "teacher@example.com")
	svc := newArticleService(t, db)

	cover := &dto.CoverFile{
		Reader:      strings.NewReader("not an image"),
		FileName:    "notes.txt",
		ContentType: "text/plain",
		Size:        12,
	}
	_, err := svc.Create(context.Background(), teacher, dto.CreateArticleInput{
		Title:   "Notes",
		Content: "Plain text.",
	}, cover)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	// The rejected upload must not leave an article row behind.
	var count int64
	require.NoError(t, db.Model(&model.Article{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestTeacherSeesOnlyLinkedStudentsArticles(t *testing.T) {
	db := newTestDB(t)
	teacher1 := createTeacherUser(t, db, "t1@example.com")
	teacher2 := createTeacherUser(t, db, "t2@example.com")
	student1 := createStudentUser(t, db, "s1@example.com", *teacher1.Teacher)
	student2 := createStudentUser(t, db, "s2@example.com", *teacher2.Teacher)
	svc := newArticleService(t, db)

	ctx := context.Background()
	mine, err := svc.Create(ctx, student1, dto.CreateArticleInput{Title: "Mine", Content: "a"}, nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, student2, dto.CreateArticleInput{Title: "Other", Content: "b"}, nil)
	require.NoError(t, err)

	articles, err := svc.GetStudentArticles(ctx, teacher1)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, mine.ID, articles[0].ID)

	// Point query follows the same scope.
	got, err := svc.GetStudentArticleByID(ctx, teacher1, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, mine.ID, got.ID)

	_, err = svc.GetStudentArticleByID(ctx, teacher2, mine.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestOwnArticleScopeHidesForeignArticles(t *testing.T) {
	db := newTestDB(t)
	teacher := createTeacherUser(t, db, "t1@example.com")
	student1 := createStudentUser(t, db, "s1@example.com", *teacher.Teacher)
	student2 := createStudentUser(t, db, "s2@example.com", *teacher.Teacher)
	svc := newArticleService(t, db)

	ctx := context.Background()
	article, err := svc.Create(ctx, student1, dto.CreateArticleInput{Title: "Mine", Content: "a"}, nil)
	require.NoError(t, err)

	// An existing article outside the caller's scope reads as absent.
	_, err = svc.GetOwnByID(ctx, student2, article.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	err = svc.DeleteOwn(ctx, student2, article.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	// The author still can.
	require.NoError(t, svc.DeleteOwn(ctx, student1, article.ID))
}

func TestAdminDeleteAnyArticle(t *testing.T) {
	db := newTestDB(t)
	teacher := createTeacherUser(t, db, "t1@example.com")
	student := createStudentUser(t, db, "s1@example.com", *teacher.Teacher)
	svc := newArticleService(t, db)

	ctx := context.Background()
	article, err := svc.Create(ctx, student, dto.CreateArticleInput{Title: "Mine", Content: "a"}, nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, article.ID))

	err = svc.Delete(ctx, article.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGetAllArticles(t *testing.T) {
	db := newTestDB(t)
	teacher := createTeacherUser(t, db, "t1@example.com")
	student := createStudentUser(t, db, "s1@example.com", *teacher.Teacher)
	svc := newArticleService(t, db)

	ctx := context.Background()
	_, err := svc.Create(ctx, teacher, dto.CreateArticleInput{Title: "T", Content: "a"}, nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, student, dto.CreateArticleInput{Title: "S", Content: "b"}, nil)
	require.NoError(t, err)

	articles, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, articles, 2)
}
