// Package authz holds the ownership guard. Every mutating or
// detail-revealing operation on a project or its attachments must pass
// through Authorize before touching the row.
package authz

import "github.com/dmitrijs2005/projboard/internal/common"

// Authorize allows the call iff the caller is the resource owner.
// Callers must already be authenticated; an empty callerID never matches
// because owner ids are db-generated uuids.
func Authorize(resourceOwnerID, callerID string) error {
	if callerID == "" || resourceOwnerID != callerID {
		return common.ErrorForbidden
	}
	return nil
}
