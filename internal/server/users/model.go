package users

import "github.com/dmitrijs2005/gzapadmin/internal/server/models"

// User is the stored account record.
type User = models.User
