package entity

// Row is the tier classification of a category. It controls which transfer
// directions are legal on the board.
type Row int

const (
	RowClient    Row = 1
	RowEmployee  Row = 2
	RowProject   Row = 3
	RowWarehouse Row = 4
)

// IsValid reports whether the row is one of the four known tiers.
func (r Row) IsValid() bool {
	return r >= RowClient && r <= RowWarehouse
}

// String returns the display name of the row.
func (r Row) String() string {
	switch r {
	case RowClient:
		return "client"
	case RowEmployee:
		return "employee"
	case RowProject:
		return "project"
	case RowWarehouse:
		return "warehouse"
	default:
		return "unknown"
	}
}

// CanTransfer reports whether funds may move from a category in the source
// row to a category in the target row. Legal directions: client to employee,
// employee to project, and employee to/from warehouse. The Transfer Engine
// and any drop-validity check in a UI must both call this single policy.
func CanTransfer(source, target Row) bool {
	switch {
	case source == RowClient && target == RowEmployee:
		return true
	case source == RowEmployee && target == RowProject:
		return true
	case source == RowEmployee && target == RowWarehouse:
		return true
	case source == RowWarehouse && target == RowEmployee:
		return true
	default:
		return false
	}
}
