package index

var (
	bMeta    = []byte("meta")     // slug -> metaBytes
	bIdxDate = []byte("idx_date") // dateKey -> 1, newest first
	bFiles   = []byte("files")    // output path -> sha256 of the written bytes
)
