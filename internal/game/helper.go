package game

// IndexOf converts a row and column into a row-major cell index.
func IndexOf(row, col, width int) int {
	return row*width + col
}

// Coordinates converts a row-major cell index into its row and column.
func Coordinates(index, width int) (row, col int) {
	return index / width, index % width
}
