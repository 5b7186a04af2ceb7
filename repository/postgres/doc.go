// Package postgres implements forum.Store on PostgreSQL through pgx.
//
//	pool, err := db.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	store := postgres.New(pool)
//
// Name uniqueness is detected from the users_user_name_key constraint.
package postgres
