// pkg/catalog/farmos_client.go

package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// farmOS exposes a JSON API; this client covers the three resources the
// planner needs: the variety taxonomy, bed occupancy, and the planting
// log sink. Token auth with short timeouts; a failed catalog call
// degrades at the caller, it never blocks planning.
type farmOS struct {
	endpoint string
	token    string
	httpc    *http.Client
}

func NewFarmOS(endpoint, token string) Client {
	return &farmOS{
		endpoint: strings.TrimRight(endpoint, "/"),
		token:    token,
		httpc:    &http.Client{Timeout: 20 * time.Second},
	}
}

func (c *farmOS) get(path string, query url.Values, out any) error {
	u := c.endpoint + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, _ := http.NewRequest("GET", u, nil)
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog GET %s: status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type varietyAttrs struct {
	Name                string   `json:"name"`
	CropName            string   `json:"crop_name"`
	PlantTypeID         string   `json:"plant_type_id"`
	SeasonType          string   `json:"season_type"`
	MaturityDays        *int     `json:"maturity_days"`
	HarvestWindowDays   *int     `json:"harvest_window_days"`
	PropagationDays     *int     `json:"propagation_days"`
	SuccessionInterval  *int     `json:"succession_interval"`
	InRowSpacingCM      *float64 `json:"in_row_spacing_cm"`
	BetweenRowSpacingCM *float64 `json:"between_row_spacing_cm"`
}

func (a varietyAttrs) toVariety(id string) Variety {
	return Variety{
		ID:                  id,
		Name:                a.Name,
		CropName:            a.CropName,
		PlantTypeID:         a.PlantTypeID,
		SeasonType:          a.SeasonType,
		MaturityDays:        a.MaturityDays,
		HarvestWindowDays:   a.HarvestWindowDays,
		PropagationDays:     a.PropagationDays,
		SuccessionInterval:  a.SuccessionInterval,
		InRowSpacingCM:      a.InRowSpacingCM,
		BetweenRowSpacingCM: a.BetweenRowSpacingCM,
	}
}

func (c *farmOS) Varieties() ([]Variety, error) {
	var out struct {
		Data []struct {
			ID         string       `json:"id"`
			Attributes varietyAttrs `json:"attributes"`
		} `json:"data"`
	}
	if err := c.get("/api/taxonomy_term/plant_type", nil, &out); err != nil {
		return nil, err
	}
	vs := make([]Variety, 0, len(out.Data))
	for _, d := range out.Data {
		vs = append(vs, d.Attributes.toVariety(d.ID))
	}
	return vs, nil
}

func (c *farmOS) VarietyByID(id string) (*Variety, error) {
	var out struct {
		Data struct {
			ID         string       `json:"id"`
			Attributes varietyAttrs `json:"attributes"`
		} `json:"data"`
	}
	if err := c.get("/api/taxonomy_term/plant_type/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	if out.Data.ID == "" {
		return nil, fmt.Errorf("variety %s not found", id)
	}
	v := out.Data.Attributes.toVariety(out.Data.ID)
	return &v, nil
}

func (c *farmOS) BedOccupancy(start, end time.Time) (*Occupancy, error) {
	q := url.Values{}
	q.Set("start_date", start.Format("2006-01-02"))
	q.Set("end_date", end.Format("2006-01-02"))
	var out Occupancy
	if err := c.get("/api/bed-occupancy", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *farmOS) SubmitPlanting(rec PlantingRecord) error {
	b, _ := json.Marshal(rec)
	req, _ := http.NewRequest("POST", c.endpoint+"/api/log/planting", bytes.NewReader(b))
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("submit planting: status %d", resp.StatusCode)
	}
	return nil
}
