package compare

// Diff computes the structural diff of two snapshots. It is a pure function:
// the same pair of snapshots always yields the same result, and tables
// appear in lexicographic order so repeated renders are visually stable.
//
// Every table present in either snapshot lands in exactly one of the three
// result groups. Count mismatches on shared tables are reported, not judged.
func Diff(source, destination *Snapshot) *DiffResult {
	result := &DiffResult{}

	srcTables := source.Tables()
	dstTables := destination.Tables()

	// Merge-walk the two lexicographically ordered table lists.
	i, j := 0, 0
	for i < len(srcTables) && j < len(dstTables) {
		src, dst := srcTables[i], dstTables[j]
		switch {
		case src.Table == dst.Table:
			result.InBoth = append(result.InBoth, TableCounts{
				Table:       src.Table,
				Source:      src.KeyCount,
				Destination: dst.KeyCount,
			})
			i++
			j++
		case src.Table < dst.Table:
			result.OnlyInSource = append(result.OnlyInSource, src)
			i++
		default:
			result.OnlyInDestination = append(result.OnlyInDestination, dst)
			j++
		}
	}
	for ; i < len(srcTables); i++ {
		result.OnlyInSource = append(result.OnlyInSource, srcTables[i])
	}
	for ; j < len(dstTables); j++ {
		result.OnlyInDestination = append(result.OnlyInDestination, dstTables[j])
	}

	return result
}
