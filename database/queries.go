package database

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrDuplicateTitle    = errors.New("a post with that title already exists")
)

// CreateUser inserts a new user. The first user ever created is provisioned
// as the admin; everyone after that is a reader. Uniqueness of username and
// email is enforced by the database, not by a check-then-insert.
//
// Admin is granted only after the insert, to the row holding the minimum id.
// By then the transaction holds the write lock, so two overlapping first
// registrations cannot both see an empty table and both come out admin.
func CreateUser(db *gorm.DB, user *User) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		user.Role = RoleReader
		if err := tx.Omit(clause.Associations).Create(user).Error; err != nil {
			return err
		}

		var minID uint
		if err := tx.Model(&User{}).Select("MIN(id)").Scan(&minID).Error; err != nil {
			return err
		}
		if user.ID != minID {
			return nil
		}

		user.Role = RoleAdmin
		return tx.Model(user).Update("role", RoleAdmin).Error
	})
	switch {
	case isUniqueViolation(err, "users.email"):
		return ErrDuplicateEmail
	case isUniqueViolation(err, "users.username"):
		return ErrDuplicateUsername
	}
	return err
}

// isUniqueViolation matches the sqlite constraint error for one column, so
// callers can tell which field collided.
func isUniqueViolation(err error, column string) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: "+column)
}

func GetUserByEmail(db *gorm.DB, email string) (*User, error) {
	var user User
	result := db.Where(&User{Email: email}).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &user, nil
}

func GetUser(db *gorm.DB, id uint) (*User, error) {
	var user User
	result := db.First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &user, nil
}

// ListPosts returns all posts in insertion order (ascending id).
func ListPosts(db *gorm.DB) ([]BlogPost, error) {
	var posts []BlogPost
	result := db.Preload("Author").Order("id ASC").Find(&posts)
	return posts, result.Error
}

// GetPost loads a post with its author and comments (commenters included).
// Returns nil without error when no such post exists.
func GetPost(db *gorm.DB, id uint) (*BlogPost, error) {
	var post BlogPost
	result := db.Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.id ASC")
		}).
		Preload("Comments.Author").
		First(&post, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &post, nil
}

func CreatePost(db *gorm.DB, post *BlogPost) error {
	err := db.Omit(clause.Associations).Create(post).Error
	if isUniqueViolation(err, "blog_posts.title") {
		return ErrDuplicateTitle
	}
	return err
}

// SavePost persists edits to an existing post.
func SavePost(db *gorm.DB, post *BlogPost) error {
	err := db.Omit(clause.Associations).Save(post).Error
	if isUniqueViolation(err, "blog_posts.title") {
		return ErrDuplicateTitle
	}
	return err
}

// DeletePost removes a post together with all of its comments, atomically.
// Cascading here keeps the comments table free of orphaned rows.
func DeletePost(db *gorm.DB, post *BlogPost) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(&Comment{PostID: post.ID}).Delete(&Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(post).Error
	})
}

func GetComment(db *gorm.DB, id uint) (*Comment, error) {
	var comment Comment
	result := db.First(&comment, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &comment, nil
}

func CreateComment(db *gorm.DB, comment *Comment) error {
	return db.Omit(clause.Associations).Create(comment).Error
}

func DeleteComment(db *gorm.DB, comment *Comment) error {
	return db.Delete(comment).Error
}
