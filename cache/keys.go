package cache

import "fmt"

// Key naming convention, shared by the accessor and the invalidator.
// List keys are scoped by the owning account, detail keys by document id.

// BatchListKey addresses all batches of one account.
func BatchListKey(ownerID string) string {
	return fmt.Sprintf("batches:%s", ownerID)
}

// BatchKey addresses a single batch.
func BatchKey(id string) string {
	return fmt.Sprintf("batch:%s", id)
}

// StudentListKey addresses all students of one account.
func StudentListKey(ownerID string) string {
	return fmt.Sprintf("students:%s", ownerID)
}

// StudentKey addresses a single student. Detail keys carry no owner scope:
// any authenticated caller holding a valid id reads the same entry.
func StudentKey(id string) string {
	return fmt.Sprintf("student:%s", id)
}
