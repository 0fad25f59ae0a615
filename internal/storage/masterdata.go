package storage

type Machine struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Status   string `json:"status"`
	IsActive bool   `json:"is_active"`
}

type Mold struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ProductName string `json:"product_name"`
	Cavities    int    `json:"cavities"`
	Status      string `json:"status"`
	IsActive    bool   `json:"is_active"`
}

type Product struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Material string `json:"material"`
	IsActive bool   `json:"is_active"`
}

type Employee struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Team     string `json:"team"`
	IsActive bool   `json:"is_active"`
}

type DefectType struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	IsActive bool   `json:"is_active"`
}

type Team struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	IsActive bool   `json:"is_active"`
}
