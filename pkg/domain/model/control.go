package model

import "strconv"

// ControlCategory classifies controls, e.g. Preventive or Detective
type ControlCategory struct {
	Header
	Name string `json:"name" csv:"name"`
}

func (c *ControlCategory) Bind(values map[string]string) error {
	bindString(values, "name", &c.Name)
	return nil
}

func (c *ControlCategory) Draft() map[string]string {
	return map[string]string{"name": c.Name}
}

func (c *ControlCategory) Matches(q string) bool {
	return containsFold(q, c.Name)
}

// ControlFrequency is how often a control is executed, e.g. Monthly
type ControlFrequency struct {
	Header
	Name string `json:"name" csv:"name"`
}

func (f *ControlFrequency) Bind(values map[string]string) error {
	bindString(values, "name", &f.Name)
	return nil
}

func (f *ControlFrequency) Draft() map[string]string {
	return map[string]string{"name": f.Name}
}

func (f *ControlFrequency) Matches(q string) bool {
	return containsFold(q, f.Name)
}

// ControlRating grades control effectiveness from 1 (robust) to 5 (no controls)
type ControlRating struct {
	Header
	Name   string `json:"name" csv:"name"`
	Rating int    `json:"rating" csv:"rating"`
	Color  string `json:"color" csv:"color"`
}

func (r *ControlRating) Bind(values map[string]string) error {
	bindString(values, "name", &r.Name)
	bindString(values, "color", &r.Color)
	return bindInt(values, "rating", &r.Rating)
}

func (r *ControlRating) Draft() map[string]string {
	return map[string]string{
		"name":   r.Name,
		"rating": strconv.Itoa(r.Rating),
		"color":  r.Color,
	}
}

func (r *ControlRating) Matches(q string) bool {
	return containsFold(q, r.Name)
}

// ObservationRating grades audit observations from 1 (negligible) to 5 (critical)
type ObservationRating struct {
	Header
	Name        string `json:"name" csv:"name"`
	Description string `json:"description" csv:"description"`
	Score       int    `json:"score" csv:"score"`
	Color       string `json:"color" csv:"color"`
}

func (r *ObservationRating) Bind(values map[string]string) error {
	bindString(values, "name", &r.Name)
	bindString(values, "description", &r.Description)
	bindString(values, "color", &r.Color)
	return bindInt(values, "score", &r.Score)
}

func (r *ObservationRating) Draft() map[string]string {
	return map[string]string{
		"name":        r.Name,
		"description": r.Description,
		"score":       strconv.Itoa(r.Score),
		"color":       r.Color,
	}
}

func (r *ObservationRating) Matches(q string) bool {
	return containsFold(q, r.Name, r.Description)
}
