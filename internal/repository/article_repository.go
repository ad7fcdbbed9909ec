package repository

import (
	"database/sql"

	"shoedex/internal/model"
)

type ArticleRepository struct {
	db *sql.DB
}

func NewArticleRepository(db *sql.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// SaveArticle inserts a raw source row. Returns false when the record_id was
// already ingested; the source row is immutable so a duplicate is a no-op.
func (r *ArticleRepository) SaveArticle(article *model.Article) (bool, error) {
	var id int64
	err := r.db.QueryRow(`
		INSERT INTO article(article_id, record_id, title, content, date, source_link, status)
		VALUES($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (record_id) DO NOTHING
		RETURNING id
	`, article.ArticleID, article.RecordID, article.Title, article.Content, article.Date, article.SourceLink, model.StatusPending).Scan(&id)

	if err == sql.ErrNoRows {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	article.ID = id
	return true, nil
}

func (r *ArticleRepository) GetByID(id int64) (*model.Article, error) {
	var a model.Article
	err := r.db.QueryRow(`
		SELECT id, article_id, record_id, title, content, date, source_link, status, fetched_at
		FROM article
		WHERE id = $1
	`, id).Scan(&a.ID, &a.ArticleID, &a.RecordID, &a.Title, &a.Content, &a.Date, &a.SourceLink, &a.Status, &a.FetchedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &a, nil
}

func (r *ArticleRepository) GetPending(limit int) ([]model.Article, error) {
	rows, err := r.db.Query(`
		SELECT id, article_id, record_id, title, content, date, source_link, status, fetched_at
		FROM article
		WHERE status = $1
		ORDER BY fetched_at ASC
		LIMIT $2
	`, model.StatusPending, limit)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []model.Article
	for rows.Next() {
		var a model.Article
		err := rows.Scan(&a.ID, &a.ArticleID, &a.RecordID, &a.Title, &a.Content, &a.Date, &a.SourceLink, &a.Status, &a.FetchedAt)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return articles, nil
}

func (r *ArticleRepository) UpdateStatus(id int64, status string) error {
	_, err := r.db.Exec(`
		UPDATE article SET status = $1 WHERE id = $2
	`, status, id)
	return err
}

func (r *ArticleRepository) SaveError(articleID int64, errMsg string, errType string) error {
	_, err := r.db.Exec(`
		INSERT INTO processing_error(article_id, error_message, error_type)
		VALUES($1, $2, $3)
	`, articleID, errMsg, errType)

	return err
}

func (r *ArticleRepository) GetErrorCount(id int64) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM processing_error
		WHERE article_id = $1
	`, id).Scan(&count)

	return count, err
}

func (r *ArticleRepository) CountByStatus() (map[string]int, error) {
	rows, err := r.db.Query(`
		SELECT status, COUNT(*) FROM article GROUP BY status
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}
