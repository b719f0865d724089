package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogger/database/databasetest"
	"blogger/models"
)

func setup(t *testing.T) *Repositories {
	t.Helper()
	return New(databasetest.CreateTempDB(t).DB)
}

func createUser(t *testing.T, repos *Repositories, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, PwHash: "hash"}
	require.NoError(t, repos.Users.Create(context.Background(), user))
	return user
}

func createGroup(t *testing.T, repos *Repositories, slug string) *models.Group {
	t.Helper()
	group := &models.Group{Title: "Group " + slug, Slug: slug, Description: "about " + slug}
	require.NoError(t, repos.Groups.Create(context.Background(), group))
	return group
}

func createPost(t *testing.T, repos *Repositories, author *models.User, group *models.Group, text string) *models.Post {
	t.Helper()
	post := &models.Post{Text: text, AuthorID: author.ID}
	if group != nil {
		post.GroupID = &group.ID
	}
	require.NoError(t, repos.Posts.Create(context.Background(), post))
	return post
}

func TestUserRepository(t *testing.T) {
	repos := setup(t)
	ctx := context.Background()

	user := createUser(t, repos, "auth")
	assert.NotZero(t, user.ID)

	exists, err := repos.Users.Exists(ctx, "auth")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repos.Users.Exists(ctx, "nobody")
	require.NoError(t, err)
	assert.False(t, exists)

	found, err := repos.Users.FindByUsername(ctx, "auth")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repos.Users.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repos.Users.FindByID(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	err = repos.Users.Create(ctx, &models.User{Username: "auth", PwHash: "other"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestGroupRepository(t *testing.T) {
	repos := setup(t)
	ctx := context.Background()

	group := createGroup(t, repos, "test-slug")
	createGroup(t, repos, "another")

	found, err := repos.Groups.FindBySlug(ctx, "test-slug")
	require.NoError(t, err)
	assert.Equal(t, group.ID, found.ID)
	assert.Equal(t, "about test-slug", found.Description)

	_, err = repos.Groups.FindBySlug(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := repos.Groups.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	err = repos.Groups.Create(ctx, &models.Group{Title: "dup", Slug: "test-slug"})
	assert.Error(t, err)
}

func TestPostRepository_CreateAndFind(t *testing.T) {
	repos := setup(t)
	ctx := context.Background()

	author := createUser(t, repos, "auth")
	group := createGroup(t, repos, "test-slug")
	post := createPost(t, repos, author, group, "Тестовый текст")

	assert.False(t, post.PubDate.IsZero())

	found, err := repos.Posts.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "auth", found.Author.Username)
	require.NotNil(t, found.Group)
	assert.Equal(t, "test-slug", found.Group.Slug)

	_, err = repos.Posts.FindByID(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostRepository_UpdateKeepsPubDate(t *testing.T) {
	repos := setup(t)
	ctx := context.Background()

	author := createUser(t, repos, "auth")
	oldGroup := createGroup(t, repos, "old")
	newGroup := createGroup(t, repos, "new")
	post := createPost(t, repos, author, oldGroup, "before")

	original, err := repos.Posts.FindByID(ctx, post.ID)
	require.NoError(t, err)

	edited := *original
	edited.Text = "after"
	edited.GroupID = &newGroup.ID
	edited.PubDate = time.Now().Add(48 * time.Hour)
	require.NoError(t, repos.Posts.Update(ctx, &edited))

	found, err := repos.Posts.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", found.Text)
	assert.Equal(t, newGroup.ID, *found.GroupID)
	assert.True(t, found.PubDate.Equal(original.PubDate))

	oldCount, err := repos.Posts.Count(ctx, PostFilter{GroupID: oldGroup.ID})
	require.NoError(t, err)
	assert.Zero(t, oldCount)

	newCount, err := repos.Posts.Count(ctx, PostFilter{GroupID: newGroup.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), newCount)

	edited.GroupID = nil
	require.NoError(t, repos.Posts.Update(ctx, &edited))
	found, err = repos.Posts.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Nil(t, found.GroupID)

	err = repos.Posts.Update(ctx, &models.Post{ID: 9999, Text: "ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostRepository_DeleteCascadesComments(t *testing.T) {
	repos := setup(t)
	ctx := context.Background()

	author := createUser(t, repos, "auth")
	post := createPost(t, repos, author, nil, "text")
	other := createPost(t, repos, author, nil, "other")

	require.NoError(t, repos.Comments.Create(ctx, &models.Comment{Text: "c1", AuthorID: author.ID, PostID: post.ID}))
	require.NoError(t, repos.Comments.Create(ctx, &models.Comment{Text: "c2", AuthorID: author.ID, PostID: other.ID}))

	require.NoError(t, repos.Posts.Delete(ctx, post.ID))

	count, err := repos.Comments.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	assert.ErrorIs(t, repos.Posts.Delete(ctx, post.ID), ErrNotFound)
}

func TestPostRepository_Page(t *testing.T) {
	repos := setup(t)
	ctx := context.Background()

	author := createUser(t, repos, "auth")
	other := createUser(t, repos, "other")
	group := createGroup(t, repos, "test-slug")
	for i := 0; i < 13; i++ {
		createPost(t, repos, author, group, fmt.Sprintf("post %d", i))
	}
	createPost(t, repos, other, nil, "not in group")

	first, err := repos.Posts.Page(ctx, PostFilter{GroupID: group.ID}, "", 10)
	require.NoError(t, err)
	assert.Equal(t, 10, first.Len())
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, int64(13), first.Paginator.Count)
	assert.Equal(t, "post 12", first.Items[0].Text)
	assert.Equal(t, "auth", first.Items[0].Author.Username)
	require.NotNil(t, first.Items[0].Group)

	second, err := repos.Posts.Page(ctx, PostFilter{GroupID: group.ID}, "2", 10)
	require.NoError(t, err)
	assert.Equal(t, 3, second.Len())
	assert.Equal(t, "post 0", second.Items[2].Text)

	byAuthor, err := repos.Posts.Page(ctx, PostFilter{AuthorID: other.ID}, "1", 10)
	require.NoError(t, err)
	require.Equal(t, 1, byAuthor.Len())
	assert.Equal(t, "not in group", byAuthor.Items[0].Text)

	all, err := repos.Posts.Page(ctx, PostFilter{}, "99", 10)
	require.NoError(t, err)
	assert.Equal(t, 2, all.Number)
	assert.Equal(t, 4, all.Len())
}

func TestPostRepository_FollowFeed(t *testing.T) {
	repos := setup(t)
	ctx := context.Background()

	follower := createUser(t, repos, "follower")
	following := createUser(t, repos, "following")
	stranger := createUser(t, repos, "other")

	post := createPost(t, repos, following, nil, "from followed author")
	createPost(t, repos, stranger, nil, "from stranger")

	_, err := repos.Follows.Follow(ctx, follower.ID, following.ID)
	require.NoError(t, err)

	feed, err := repos.Posts.Page(ctx, PostFilter{FollowerID: follower.ID}, "", 10)
	require.NoError(t, err)
	require.Equal(t, 1, feed.Len())
	assert.Equal(t, post.ID, feed.Items[0].ID)

	empty, err := repos.Posts.Page(ctx, PostFilter{FollowerID: stranger.ID}, "", 10)
	require.NoError(t, err)
	assert.Zero(t, empty.Len())
}

func TestCommentRepository_ListByPost(t *testing.T) {
	repos := setup(t)
	ctx := context.Background()

	author := createUser(t, repos, "auth")
	post := createPost(t, repos, author, nil, "text")

	require.NoError(t, repos.Comments.Create(ctx, &models.Comment{Text: "first", AuthorID: author.ID, PostID: post.ID}))
	require.NoError(t, repos.Comments.Create(ctx, &models.Comment{Text: "second", AuthorID: author.ID, PostID: post.ID}))

	comments, err := repos.Comments.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Text)
	assert.Equal(t, "auth", comments[0].Author.Username)
	assert.False(t, comments[0].Created.IsZero())
}

func TestFollowRepository(t *testing.T) {
	repos := setup(t)
	ctx := context.Background()

	follower := createUser(t, repos, "follower")
	author := createUser(t, repos, "following")

	before, err := repos.Follows.Count(ctx)
	require.NoError(t, err)

	created, err := repos.Follows.Follow(ctx, follower.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repos.Follows.Follow(ctx, follower.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, created)

	_, err = repos.Follows.Follow(ctx, follower.ID, follower.ID)
	assert.ErrorIs(t, err, ErrSelfFollow)

	count, err := repos.Follows.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, before+1, count)

	ok, err := repos.Follows.IsFollowing(ctx, follower.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repos.Follows.IsFollowing(ctx, author.ID, follower.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	following, err := repos.Follows.Following(ctx, follower.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, "following", following[0].Username)

	followers, err := repos.Follows.Followers(ctx, author.ID)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, "follower", followers[0].Username)

	removed, err := repos.Follows.Unfollow(ctx, follower.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repos.Follows.Unfollow(ctx, follower.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	count, err = repos.Follows.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, count)
}
