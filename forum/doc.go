// Package forum holds the domain of the ryob discussion board: users,
// topics and posts, the services that create and list them, registration
// rules, and the bridge between a request session and the current user.
//
// Services depend on small repository interfaces implemented by
// repository/postgres and repository/sqlite. Repositories report the domain
// conditions they can detect (ErrNameAlreadyInUse, ErrNoSuchUser,
// ErrNoSuchTopic) and return every other failure unchanged; services wrap
// those as ErrStorageFailure.
//
//	identity := forum.NewIdentity(users, forum.WithIdentityLogger(log))
//	u, err := identity.Register(ctx, "Ada", "correcthorse")
//	switch {
//	case errors.Is(err, forum.ErrNameAlreadyInUse):
//		// 409
//	case err != nil:
//		// 500
//	}
package forum
