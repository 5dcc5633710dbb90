package database_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"localinfo/internal/adapters/database"
	"localinfo/internal/core/audit"
	"localinfo/internal/core/comment"
	"localinfo/internal/core/photo"
	"localinfo/internal/core/post"
	"localinfo/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_CreateAndFind(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := database.NewPostRepositoryDatabase(db)

	u := testutil.CreateUser(t, db, "nick", "Downtown")
	c := testutil.CreateCategory(t, db, "Local News")

	p, err := repo.Create(ctx, post.New("contents", c, u, []photo.Photo{{URL: "u1"}, {URL: "u2"}}))
	require.NoError(t, err)
	require.NotZero(t, p.ID)

	found, ok, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Local News", found.Category.Name)
	assert.Equal(t, "nick", found.User.Nickname)
	assert.Equal(t, "Downtown", found.Region.Neighborhood)
	assert.Equal(t, []string{"u1", "u2"}, photo.URLs(found.Photos))
	assert.Equal(t, audit.StatusActive, found.Status)

	_, ok, err = repo.FindByID(ctx, p.ID+100)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPostRepository_SoftDeleteHidesRow(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := database.NewPostRepositoryDatabase(db)

	u := testutil.CreateUser(t, db, "nick", "Downtown")
	c := testutil.CreateCategory(t, db, "Local News")
	kept, err := repo.Create(ctx, post.New("kept", c, u, nil))
	require.NoError(t, err)
	gone, err := repo.Create(ctx, post.New("gone", c, u, nil))
	require.NoError(t, err)

	require.NoError(t, repo.SoftDelete(ctx, gone.ID, time.Now()))

	_, ok, err := repo.FindByID(ctx, gone.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	posts, err := repo.FindAllByCategoryID(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, kept.ID, posts[0].ID)

	var raw post.Post
	require.NoError(t, db.Unscoped().First(&raw, gone.ID).Error)
	assert.True(t, raw.IsDeleted())
	assert.Equal(t, audit.StatusDeleted, raw.Status)
}

func TestCommentRepository_SoftDeleteByPostID(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	posts := database.NewPostRepositoryDatabase(db)
	comments := database.NewCommentRepositoryDatabase(db)

	u := testutil.CreateUser(t, db, "nick", "Downtown")
	c := testutil.CreateCategory(t, db, "Local News")
	p1, err := posts.Create(ctx, post.New("one", c, u, nil))
	require.NoError(t, err)
	p2, err := posts.Create(ctx, post.New("two", c, u, nil))
	require.NoError(t, err)

	a, err := comments.Create(ctx, &comment.Comment{Contents: "a", PostID: p1.ID, UserID: u.ID})
	require.NoError(t, err)
	b, err := comments.Create(ctx, &comment.Comment{Contents: "b", PostID: p1.ID, UserID: u.ID})
	require.NoError(t, err)
	other, err := comments.Create(ctx, &comment.Comment{Contents: "other", PostID: p2.ID, UserID: u.ID})
	require.NoError(t, err)

	ids, err := comments.SoftDeleteByPostID(ctx, p1.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, []uint{a.ID, b.ID}, ids)

	left, err := comments.FindAllByPostID(ctx, p1.ID)
	require.NoError(t, err)
	assert.Empty(t, left)

	_, ok, err := comments.FindByID(ctx, other.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCommentPhotoRepository_Lifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	posts := database.NewPostRepositoryDatabase(db)
	comments := database.NewCommentRepositoryDatabase(db)
	photos := database.NewCommentPhotoRepositoryDatabase(db)

	u := testutil.CreateUser(t, db, "nick", "Downtown")
	c := testutil.CreateCategory(t, db, "Local News")
	p, err := posts.Create(ctx, post.New("one", c, u, nil))
	require.NoError(t, err)
	cm, err := comments.Create(ctx, &comment.Comment{Contents: "a", PostID: p.ID, UserID: u.ID})
	require.NoError(t, err)

	require.NoError(t, photos.CreateAll(ctx, []*photo.CommentPhoto{
		{URL: "x", CommentID: cm.ID},
		{URL: "y", CommentID: cm.ID},
	}))
	require.NoError(t, photos.CreateAll(ctx, nil))

	all, err := photos.FindAllByCommentID(ctx, cm.ID)
	require.NoError(t, err)
	require.Len(t, all, 2)

	require.NoError(t, photos.SoftDelete(ctx, all[0].ID, time.Now()))
	all, err = photos.FindAllByCommentID(ctx, cm.ID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "y", all[0].URL)

	found, ok, err := comments.FindByID(ctx, cm.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"y"}, photo.CommentURLs(found.Photos))
}

func TestTransactionManager_RollsBack(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	tm := database.NewTransactionManager(db)
	posts := database.NewPostRepositoryDatabase(db)

	u := testutil.CreateUser(t, db, "nick", "Downtown")
	c := testutil.CreateCategory(t, db, "Local News")

	boom := errors.New("boom")
	err := tm.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := posts.Create(ctx, post.New("rolled back", c, u, []photo.Photo{{URL: "u"}})); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var n int64
	require.NoError(t, db.Unscoped().Model(&post.Post{}).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Unscoped().Model(&photo.Photo{}).Count(&n).Error)
	assert.Zero(t, n)
}
