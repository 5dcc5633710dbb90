package commentapp

import (
	"context"
	"errors"
	"testing"
	"time"

	"localinfo/internal/adapters/database"
	"localinfo/internal/core/apperr"
	"localinfo/internal/core/attachment"
	commentEntity "localinfo/internal/core/comment"
	"localinfo/internal/core/photo"
	postEntity "localinfo/internal/core/post"
	userEntity "localinfo/internal/core/user"
	commentPort "localinfo/internal/ports/comment"
	"localinfo/internal/ports/storage"
	"localinfo/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db     *gorm.DB
	store  *testutil.StorageMock
	svc    *CommentService
	author *userEntity.User
	post   *postEntity.Post
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewDB(t)
	store := new(testutil.StorageMock)
	svc := NewCommentService(Repositories{
		Comments:      database.NewCommentRepositoryDatabase(db),
		CommentPhotos: database.NewCommentPhotoRepositoryDatabase(db),
		Posts:         database.NewPostRepositoryDatabase(db),
		Users:         database.NewUserRepositoryDatabase(db),
	}, database.NewTransactionManager(db), attachment.NewUploads(store, nil, zap.NewNop()), zap.NewNop())

	author := testutil.CreateUser(t, db, "nick", "Downtown")
	cat := testutil.CreateCategory(t, db, "Local News")
	return &fixture{
		db:     db,
		store:  store,
		svc:    svc,
		author: author,
		post:   testutil.CreatePost(t, db, author, cat, "post"),
	}
}

func (f *fixture) save(t *testing.T, contents string, parentID *uint, files ...storage.File) *commentPort.CommentResponse {
	t.Helper()
	res, err := f.svc.Save(context.Background(), commentPort.SaveRequest{
		UserID: f.author.ID, Contents: contents, ParentID: parentID, Photos: files,
	}, f.post.ID)
	require.NoError(t, err)
	return res
}

func TestSave_TopLevelWithPhoto(t *testing.T) {
	f := newFixture(t)
	file := testutil.File("a.png")
	f.store.On("Upload", mock.Anything, file, photo.CommentNamespace).Return("url1", nil).Once()

	res := f.save(t, "hello", nil, file)

	assert.NotZero(t, res.ID)
	assert.Equal(t, "hello", res.Contents)
	assert.Equal(t, "nick", res.NickName)
	assert.Equal(t, "Downtown", res.Region)
	assert.Nil(t, res.ParentID)
	assert.Equal(t, 0, res.Depth)
	assert.Equal(t, []string{"url1"}, res.URLs)
	f.store.AssertExpectations(t)
}

func TestSave_RoundTripKeepsUploadOrder(t *testing.T) {
	f := newFixture(t)
	a, b := testutil.File("a.png"), testutil.File("b.png")
	f.store.On("Upload", mock.Anything, a, photo.CommentNamespace).Return("url-a", nil).Once()
	f.store.On("Upload", mock.Anything, b, photo.CommentNamespace).Return("url-b", nil).Once()

	saved := f.save(t, "hello", nil, a, b)

	list, err := f.svc.FindAllByPostID(context.Background(), f.post.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, saved.ID, list[0].ID)
	assert.Equal(t, []string{"url-a", "url-b"}, list[0].URLs)
}

func TestSave_ReplyHasDepthOne(t *testing.T) {
	f := newFixture(t)
	parent := f.save(t, "top", nil)
	reply := f.save(t, "reply", &parent.ID)

	require.NotNil(t, reply.ParentID)
	assert.Equal(t, parent.ID, *reply.ParentID)
	assert.Equal(t, 1, reply.Depth)
	assert.Equal(t, []string{}, reply.URLs)

	list, err := f.svc.FindAllByPostID(context.Background(), f.post.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, c := range list {
		if c.ParentID == nil {
			assert.Equal(t, 0, c.Depth)
		} else {
			assert.Equal(t, 1, c.Depth)
		}
	}
}

func TestSave_RejectsInvalidParents(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	parent := f.save(t, "top", nil)
	reply := f.save(t, "reply", &parent.ID)

	otherPost := testutil.CreatePost(t, f.db, f.author, testutil.CreateCategory(t, f.db, "Lost and Found"), "other")
	missing := uint(999)

	cases := []struct {
		name   string
		parent *uint
		postID uint
	}{
		{"reply to reply", &reply.ID, f.post.ID},
		{"missing parent", &missing, f.post.ID},
		{"parent on another post", &parent.ID, otherPost.ID},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Save(ctx, commentPort.SaveRequest{
				UserID: f.author.ID, Contents: "deep", ParentID: tc.parent,
			}, tc.postID)
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			assert.Contains(t, apperr.FieldsOf(err), "parentId")
		})
	}
	f.store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
}

func TestSave_NotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Save(ctx, commentPort.SaveRequest{UserID: 999, Contents: "x"}, f.post.ID)
	assert.True(t, apperr.IsNotFound(err))

	_, err = f.svc.Save(ctx, commentPort.SaveRequest{UserID: f.author.ID, Contents: "x"}, 999)
	assert.True(t, apperr.IsNotFound(err))

	_, err = f.svc.FindAllByPostID(ctx, 999)
	assert.True(t, apperr.IsNotFound(err))
}

func TestSave_UploadFailureLeavesNoComment(t *testing.T) {
	f := newFixture(t)
	f.store.On("Upload", mock.Anything, mock.Anything, photo.CommentNamespace).Return("", errors.New("unreachable")).Once()

	_, err := f.svc.Save(context.Background(), commentPort.SaveRequest{
		UserID: f.author.ID, Contents: "hello", Photos: []storage.File{testutil.File("a.png")},
	}, f.post.ID)
	assert.Equal(t, apperr.KindUpstreamIO, apperr.KindOf(err))

	var n int64
	require.NoError(t, f.db.Unscoped().Model(&commentEntity.Comment{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestChangeComment_AppendsAndReplaces(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, b, c := testutil.File("a.png"), testutil.File("b.png"), testutil.File("c.png")
	f.store.On("Upload", mock.Anything, a, photo.CommentNamespace).Return("url-a", nil).Once()
	f.store.On("Upload", mock.Anything, b, photo.CommentNamespace).Return("url-b", nil).Once()
	f.store.On("Upload", mock.Anything, c, photo.CommentNamespace).Return("url-c", nil).Once()

	saved := f.save(t, "before", nil, a)

	res, err := f.svc.ChangeComment(ctx, commentPort.ChangeRequest{
		CommentID: saved.ID, Contents: "after", Photos: []storage.File{b},
	})
	require.NoError(t, err)
	assert.Equal(t, "after", res.Contents)
	assert.Equal(t, []string{"url-a", "url-b"}, res.URLs)

	var first photo.CommentPhoto
	require.NoError(t, f.db.Where("url = ?", "url-a").First(&first).Error)

	res, err = f.svc.ChangeComment(ctx, commentPort.ChangeRequest{
		CommentID: saved.ID, Contents: "again", CommentPhotoID: &first.ID, Photos: []storage.File{c},
	})
	require.NoError(t, err)
	assert.Equal(t, "again", res.Contents)
	assert.Equal(t, []string{"url-b", "url-c"}, res.URLs)
	assert.Equal(t, "nick", res.NickName)
}

func TestChangeComment_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.ChangeComment(ctx, commentPort.ChangeRequest{CommentID: 999, Contents: "x"})
	assert.True(t, apperr.IsNotFound(err))

	saved := f.save(t, "before", nil)
	foreign := uint(12345)
	_, err = f.svc.ChangeComment(ctx, commentPort.ChangeRequest{CommentID: saved.ID, Contents: "x", CommentPhotoID: &foreign})
	assert.True(t, apperr.IsNotFound(err))

	_, err = f.svc.ChangeComment(ctx, commentPort.ChangeRequest{CommentID: saved.ID, Contents: ""})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestDeleteComment_OnlyOwnPhotos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	at := time.Date(2024, 6, 2, 8, 30, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return at }

	a, b := testutil.File("a.png"), testutil.File("b.png")
	f.store.On("Upload", mock.Anything, a, photo.CommentNamespace).Return("url-a", nil).Once()
	f.store.On("Upload", mock.Anything, b, photo.CommentNamespace).Return("url-b", nil).Once()
	target := f.save(t, "target", nil, a)
	other := f.save(t, "other", nil, b)

	require.NoError(t, f.svc.DeleteComment(ctx, target.ID))

	var gone commentEntity.Comment
	require.NoError(t, f.db.Unscoped().First(&gone, target.ID).Error)
	assert.True(t, gone.IsDeleted())

	var photos []photo.CommentPhoto
	require.NoError(t, f.db.Unscoped().Order("id").Find(&photos).Error)
	require.Len(t, photos, 2)
	for _, p := range photos {
		if p.CommentID == target.ID {
			require.NotNil(t, p.DeletedTimestamp())
			assert.True(t, at.Equal(*p.DeletedTimestamp()))
		} else {
			assert.Equal(t, other.ID, p.CommentID)
			assert.False(t, p.IsDeleted())
		}
	}

	list, err := f.svc.FindAllByPostID(ctx, f.post.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, other.ID, list[0].ID)

	assert.True(t, apperr.IsNotFound(f.svc.DeleteComment(ctx, target.ID)))
}
