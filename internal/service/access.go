package service

// AccessService checks administrative permissions
type AccessService struct {
	admins map[int64]struct{}
}

// NewAccessService creates an access service with a static admin allow-list
func NewAccessService(adminIDs []int64) *AccessService {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}
	return &AccessService{admins: admins}
}

// IsAdmin reports whether the user is on the allow-list
func (s *AccessService) IsAdmin(userID int64) bool {
	_, ok := s.admins[userID]
	return ok
}
