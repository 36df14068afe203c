// Package repository implements the persistence layer over MySQL. Sentinel
// errors defined here let handlers distinguish failure scenarios without
// inspecting driver errors themselves.
package repository

import "errors"

// ErrUserExists is returned by UserRepo.Create when the username is already
// taken. Handlers translate it into a 400 "User already exists" response.
var ErrUserExists = errors.New("user already exists")

// mysqlDuplicateEntry is the MySQL error number for unique key violations.
const mysqlDuplicateEntry = "1062"
