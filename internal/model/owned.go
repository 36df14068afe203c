package model

// OwnerID implementations let the guard package treat every resource type
// uniformly when checking or filtering by ownership.

func (o Outlet) OwnerID() uint64  { return o.UserID }
func (g Good) OwnerID() uint64    { return g.UserID }
func (s Service) OwnerID() uint64 { return s.UserID }
func (a Account) OwnerID() uint64 { return a.UserID }
