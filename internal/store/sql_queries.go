package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/post-board/models"
)

var (
	userColumns = []string{"id", "name", "email", "password_hash", "created_at", "updated_at"}
	postColumns = []string{"id", "title", "content", "author_id", "created_at", "updated_at"}

	// posts joined with their authors, author columns last
	postWithAuthorColumns = []string{
		"p.id", "p.title", "p.content", "p.author_id", "p.created_at", "p.updated_at",
		"u.id", "u.name", "u.email", "u.created_at", "u.updated_at",
	}
)

func buildInsertUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert(models.User{}.TableName()).
		Columns(userColumns...).
		Values(user.UserID, user.Name, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt).
		ToSql()
}

func buildSelectUserQuery(b sq.StatementBuilderType, where sq.Eq) (string, []any, error) {
	return b.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(where).
		ToSql()
}

func buildSelectAllUsersQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select(userColumns...).
		From(models.User{}.TableName()).
		OrderBy("created_at", "id").
		ToSql()
}

func buildUpdateUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Update(models.User{}.TableName()).
		SetMap(map[string]any{
			"name":       user.Name,
			"email":      user.Email,
			"updated_at": user.UpdatedAt,
		}).
		Where(sq.Eq{"id": user.UserID}).
		ToSql()
}

func buildInsertPostQuery(b sq.StatementBuilderType, post models.Post) (string, []any, error) {
	return b.Insert(models.Post{}.TableName()).
		Columns(postColumns...).
		Values(post.ID, post.Title, post.Content, post.AuthorID, post.CreatedAt, post.UpdatedAt).
		ToSql()
}

func buildSelectPostQuery(b sq.StatementBuilderType, postID string) (string, []any, error) {
	return b.Select(postColumns...).
		From(models.Post{}.TableName()).
		Where(sq.Eq{"id": postID}).
		ToSql()
}

func buildSelectPostsByAuthorQuery(b sq.StatementBuilderType, authorID string) (string, []any, error) {
	return b.Select(postColumns...).
		From(models.Post{}.TableName()).
		Where(sq.Eq{"author_id": authorID}).
		OrderBy("created_at", "id").
		ToSql()
}

func buildSelectPostsWithAuthorsQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select(postWithAuthorColumns...).
		From(models.Post{}.TableName() + " p").
		Join(models.User{}.TableName() + " u ON u.id = p.author_id").
		OrderBy("p.created_at", "p.id").
		ToSql()
}

func buildUpdatePostQuery(b sq.StatementBuilderType, post models.Post) (string, []any, error) {
	return b.Update(models.Post{}.TableName()).
		SetMap(map[string]any{
			"title":      post.Title,
			"content":    post.Content,
			"updated_at": post.UpdatedAt,
		}).
		Where(sq.Eq{"id": post.ID}).
		ToSql()
}

func buildDeletePostQuery(b sq.StatementBuilderType, postID string) (string, []any, error) {
	return b.Delete(models.Post{}.TableName()).
		Where(sq.Eq{"id": postID}).
		ToSql()
}
