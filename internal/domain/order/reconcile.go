package order

// OutdatedOrderIDs returns the remote ids of local orders whose modification
// date differs from the one in the fetched summaries.
func OutdatedOrderIDs(summaries []Summary, local []Order) []int64 {
	modified := make(map[int64]string, len(summaries))
	for _, s := range summaries {
		modified[s.RemoteOrderID] = s.DateModified
	}

	var ids []int64
	for _, o := range local {
		if o.DateModified != modified[o.RemoteOrderID] {
			ids = append(ids, o.RemoteOrderID)
		}
	}
	return ids
}

// MissingOrderIDs returns the summary ids that have no local order, in summary order
func MissingOrderIDs(summaries []Summary, local []Order) []int64 {
	known := make(map[int64]struct{}, len(local))
	for _, o := range local {
		known[o.RemoteOrderID] = struct{}{}
	}

	var ids []int64
	for _, s := range summaries {
		if _, ok := known[s.RemoteOrderID]; !ok {
			ids = append(ids, s.RemoteOrderID)
		}
	}
	return ids
}

// Chunk splits ids into consecutive slices of at most size elements
func Chunk(ids []int64, size int) [][]int64 {
	if size <= 0 {
		size = NumOrdersPerFetch
	}
	var chunks [][]int64
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
