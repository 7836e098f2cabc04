package database

// OwnerColumns projects the owner summary of a joined users alias under prefix.
func OwnerColumns(alias, prefix string) []string {
	return []string{
		alias + ".id AS " + prefix + "id",
		alias + ".username AS " + prefix + "username",
		alias + ".full_name AS " + prefix + "full_name",
		alias + ".avatar AS " + prefix + "avatar",
	}
}

// VideoCardColumns projects a video list item; the owner must be joined as "owner".
func VideoCardColumns(alias string) []string {
	cols := []string{
		alias + ".id",
		alias + ".video_file",
		alias + ".thumbnail",
		alias + ".title",
		alias + ".description",
		alias + ".duration",
		alias + ".views",
		alias + ".is_published",
		alias + ".created_at",
		alias + ".updated_at",
	}
	return append(cols, OwnerColumns("owner", "owner_")...)
}
