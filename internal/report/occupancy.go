package report

// OccupancyRow is one room in the flattened occupancy report fed to the
// excel and pdf renderers.
type OccupancyRow struct {
	Hostel     string
	RoomNumber string
	RoomType   string
	Floor      int
	Status     string
	Occupants  string
	Count      int
	Capacity   int
}
