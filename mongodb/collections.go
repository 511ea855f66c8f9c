package mongodb

const (
	UsersCollection    = "users"    // For coaching-center accounts
	BatchesCollection  = "batches"  // For batch records
	StudentsCollection = "students" // For student roster entries
)
