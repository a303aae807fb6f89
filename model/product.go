package model

type AssetListItem struct {
	ID         uint64  `db:"id" json:"id"`
	Name       string  `db:"name" json:"name"`
	ArtistName string  `db:"artist_name" json:"artist_name"`
	FileFormat string  `db:"file_format" json:"file_format"`
	Price      float64 `db:"price" json:"price"`
	Stock      int64   `db:"stock" json:"stock"`
}

type AssetDetail struct {
	ID          uint64  `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Description string  `db:"description" json:"description,omitempty"`
	ArtistID    uint64  `db:"artist_id" json:"artist_id"`
	ArtistName  string  `db:"artist_name" json:"artist_name"`
	FileFormat  string  `db:"file_format" json:"file_format"`
	PreviewURL  string  `db:"preview_url" json:"preview_url,omitempty"`
	Price       float64 `db:"price" json:"price"`
	Stock       int64   `db:"stock" json:"stock"`
}

type AssetListResponse struct {
	Items      []AssetListItem `json:"items"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	PerPage    int             `json:"per_page"`
}

// ProductRow is the in-transaction snapshot read at checkout time. Price is
// re-read here, never trusted from the client.
type ProductRow struct {
	ID    uint64  `db:"id"`
	Price float64 `db:"price"`
	Stock int64   `db:"stock"`
}
