package entity

import "testing"

func TestCanTransfer(t *testing.T) {
	cases := []struct {
		name   string
		source Row
		target Row
		want   bool
	}{
		{"client to employee", RowClient, RowEmployee, true},
		{"employee to project", RowEmployee, RowProject, true},
		{"employee to warehouse", RowEmployee, RowWarehouse, true},
		{"warehouse to employee", RowWarehouse, RowEmployee, true},
		{"employee to client is one-way", RowEmployee, RowClient, false},
		{"project to employee is one-way", RowProject, RowEmployee, false},
		{"client to project skips a tier", RowClient, RowProject, false},
		{"client to warehouse", RowClient, RowWarehouse, false},
		{"project to warehouse", RowProject, RowWarehouse, false},
		{"same row", RowEmployee, RowEmployee, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanTransfer(tc.source, tc.target); got != tc.want {
				t.Errorf("CanTransfer(%v, %v) = %v, want %v", tc.source, tc.target, got, tc.want)
			}
		})
	}
}

func TestRowIsValid(t *testing.T) {
	for _, row := range []Row{RowClient, RowEmployee, RowProject, RowWarehouse} {
		if !row.IsValid() {
			t.Errorf("expected row %d to be valid", row)
		}
	}

	for _, row := range []Row{0, 5, -1} {
		if row.IsValid() {
			t.Errorf("expected row %d to be invalid", row)
		}
	}
}
