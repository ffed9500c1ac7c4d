package database

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/emilythestrangee/wordcap/backend/internal/models"
	"github.com/emilythestrangee/wordcap/backend/internal/thread"
)

const (
	constraintQuota       = "comments_quota"
	constraintAuthorReply = "comments_author_reply"
)

// guards run after AutoMigrate. They are idempotent.
//
// The quota trigger takes a transaction-scoped advisory lock on the thread key
// and counts again, so two inserts racing past the application check cannot
// both land a comment over the limit.
var guards = []string{
	`ALTER TABLE comments DROP CONSTRAINT IF EXISTS comments_one_participant`,
	`ALTER TABLE comments ADD CONSTRAINT comments_one_participant
		CHECK (num_nonnulls(user_id, anonymous_id) = 1)`,
	fmt.Sprintf(`CREATE OR REPLACE FUNCTION enforce_comment_rules() RETURNS trigger AS $$
	BEGIN
		IF NEW.is_author_reply THEN
			IF NEW.user_id IS DISTINCT FROM (SELECT user_id FROM posts WHERE id = NEW.post_id) THEN
				RAISE EXCEPTION 'author reply by non-author'
					USING ERRCODE = 'check_violation', CONSTRAINT = '%s';
			END IF;
			RETURN NEW;
		END IF;

		PERFORM pg_advisory_xact_lock(hashtext(NEW.thread_key));
		IF (SELECT count(*) FROM comments
			WHERE post_id = NEW.post_id
			AND thread_key = NEW.thread_key
			AND NOT is_author_reply) >= %d THEN
			RAISE EXCEPTION 'comment quota exceeded'
				USING ERRCODE = 'check_violation', CONSTRAINT = '%s';
		END IF;
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql`, constraintAuthorReply, thread.Quota, constraintQuota),
	`DROP TRIGGER IF EXISTS comments_rules ON comments`,
	`CREATE TRIGGER comments_rules BEFORE INSERT ON comments
		FOR EACH ROW EXECUTE FUNCTION enforce_comment_rules()`,
}

// Migrate creates or updates the schema.
func Migrate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)

	err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Notification{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for i, stmt := range guards {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("guard %d: %w", i, err)
		}
	}

	slog.Info("database migrations completed")
	return nil
}
