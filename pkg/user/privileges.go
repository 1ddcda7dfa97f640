package user

// Privilege levels held by account types.
const (
	ClientLevel = 1
	AdminLevel  = 100
)

// Privilege levels required per operation.
const (
	PrivilegeSearchItineraries = 0
	PrivilegeSearchSegments    = 0
	PrivilegeSortResults       = 0

	PrivilegeBookTravel = 1
	PrivilegeEditSelf   = 1

	PrivilegeEditOther     = 100
	PrivilegeViewOther     = 100
	PrivilegeUploadUsers   = 100
	PrivilegeUploadTravel  = 100
	PrivilegeExportRecords = 100
)
