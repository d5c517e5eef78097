package boiledrepos

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
	"github.com/volatiletech/sqlboiler/v4/queries"
	"github.com/volatiletech/sqlboiler/v4/queries/qm"
	"github.com/volatiletech/strmangle"

	"github.com/trezcool/timetable/core"
	"github.com/trezcool/timetable/core/user"
	"github.com/trezcool/timetable/storage/database/sqlboiler/models"
)

type userRepository struct {
	baseRepository
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db core.DB) *userRepository {
	return &userRepository{baseRepository{db: db}}
}

func (repo userRepository) boil(usr user.User) *models.User {
	return &models.User{
		ID:           usr.ID,
		Name:         usr.Name,
		Username:     null.NewString(usr.Username, usr.Username != ""),
		Email:        null.NewString(usr.Email, usr.Email != ""),
		Role:         usr.Role.String(),
		IsActive:     usr.IsActive,
		PasswordHash: null.BytesFrom(usr.PasswordHash),
		TeacherID:    null.IntFromPtr(usr.TeacherID),
		CreatedAt:    usr.CreatedAt.UTC(),
		UpdatedAt:    usr.UpdatedAt.UTC(),
		LastLogin:    null.NewTime(usr.LastLogin.UTC(), !usr.LastLogin.IsZero()),
	}
}

func (repo userRepository) unboil(usr *models.User) user.User {
	if usr == nil {
		return user.User{}
	}
	return user.User{
		ID:           usr.ID,
		Name:         usr.Name,
		Username:     usr.Username.String,
		Email:        usr.Email.String,
		Role:         user.NormalizeRole(usr.Role),
		IsActive:     usr.IsActive,
		PasswordHash: usr.PasswordHash.Bytes,
		TeacherID:    usr.TeacherID.Ptr(),
		CreatedAt:    usr.CreatedAt.UTC(),
		UpdatedAt:    usr.UpdatedAt.UTC(),
		LastLogin:    usr.LastLogin.Time.UTC(),
	}
}

func (repo userRepository) CheckUsernameUniqueness(ctx context.Context, username, email string, excludedUsers ...user.User) error {
	mods := make([]qm.QueryMod, 0, len(excludedUsers)+1)
	for _, u := range excludedUsers {
		mods = append(mods, qm.Where(models.UserColumns.ID+" <> ?", u.ID))
	}

	exec := repo.getExec(nil)
	taken, err := models.Exists(ctx, exec, models.TableNames.User, append(mods, where(models.UserColumns.Username, username))...)
	if err != nil {
		return errors.Wrap(err, "checking username uniqueness")
	}
	if taken {
		return user.ErrUsernameExists
	}

	if email == "" {
		return nil
	}
	taken, err = models.Exists(ctx, exec, models.TableNames.User, append(mods, where(models.UserColumns.Email, email))...)
	if err != nil {
		return errors.Wrap(err, "checking email uniqueness")
	}
	if taken {
		return user.ErrEmailExists
	}
	return nil
}

func (repo userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	u := repo.boil(usr)
	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		models.Quote(models.TableNames.User),
		strings.Join(models.UserInsertColumns, ", "),
		strmangle.Placeholders(true, len(models.UserInsertColumns), 1, 1),
		models.UserColumns.ID,
	)
	if err := queries.Raw(query, u.InsertValues()...).QueryRowContext(ctx, repo.getExec(nil)).Scan(&u.ID); err != nil {
		return user.User{}, trapWriteErr(err, "inserting user")
	}
	return repo.unboil(u), nil
}

func (repo userRepository) GetUser(ctx context.Context, filter user.GetFilter) (user.User, error) {
	var mod qm.QueryMod
	switch {
	case filter.ID != 0:
		mod = where(models.UserColumns.ID, filter.ID)
	case filter.Username != "":
		mod = where(models.UserColumns.Username, filter.Username)
	case filter.Email != "":
		mod = where(models.UserColumns.Email, filter.Email)
	case filter.UsernameOrEmail != "":
		mod = qm.Where(
			fmt.Sprintf("%s = ? OR %s = ?", models.UserColumns.Username, models.UserColumns.Email),
			filter.UsernameOrEmail, filter.UsernameOrEmail)
	default:
		return user.User{}, user.ErrNotFound
	}

	var u models.User
	if err := models.One(ctx, repo.getExec(nil), models.TableNames.User, &u, mod); err != nil {
		return user.User{}, trapNoRowsErr(err, "finding user")
	}
	return repo.unboil(&u), nil
}

func (repo userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	u := repo.boil(usr)
	cnt, err := models.UpdateAll(ctx, repo.getExec(nil), models.TableNames.User, u.UpdateValues(), where(models.UserColumns.ID, u.ID))
	if err != nil {
		return user.User{}, trapWriteErr(err, "updating user")
	}
	if cnt == 0 {
		return user.User{}, user.ErrNotFound
	}
	return repo.unboil(u), nil
}
