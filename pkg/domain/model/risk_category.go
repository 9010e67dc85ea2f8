package model

// RiskCategory groups risks under a named, illustrated heading
type RiskCategory struct {
	Header
	Category    string `json:"category" csv:"category"`
	Description string `json:"description" csv:"description"`
	Image       string `json:"image" csv:"image"`
}

func (c *RiskCategory) Bind(values map[string]string) error {
	bindString(values, "category", &c.Category)
	bindString(values, "description", &c.Description)
	bindString(values, "image", &c.Image)
	return nil
}

func (c *RiskCategory) Draft() map[string]string {
	return map[string]string{
		"category":    c.Category,
		"description": c.Description,
		"image":       c.Image,
	}
}

func (c *RiskCategory) Matches(q string) bool {
	return containsFold(q, c.Category, c.Description)
}
