/*
detect.go - Date-column detection

PURPOSE:
  Decides which grid columns carry calendar dates and which are identity or
  metadata columns. Headers arrive in two shapes: native date values (when the
  spreadsheet reader resolved them) and localized day-first strings. Columns
  whose headers fail to parse are skipped silently so a stray totals column
  never fails the whole sheet.
*/
package schedule

// DetectDateColumns returns the columns whose headers resolve to calendar
// dates, preserving grid order. Columns named in identityColumns are never
// date columns, whatever their header looks like.
func DetectDateColumns(g *Grid, identityColumns []string) []Column {
	identity := make(map[string]struct{}, len(identityColumns))
	for _, name := range identityColumns {
		identity[name] = struct{}{}
	}

	var dateCols []Column
	for _, col := range g.Columns {
		if _, ok := identity[col.Label]; ok {
			continue
		}
		if _, ok := col.DateValue(); ok {
			dateCols = append(dateCols, col)
		}
	}
	return dateCols
}
