package models

// VehicleListResponse wraps GET /api/veiculos/listar
type VehicleListResponse struct {
	Vehicles []Vehicle `json:"veiculos"`
	Total    int       `json:"total"`
}

// Vehicle is a tracked truck. Driver is nil when nobody is assigned.
type Vehicle struct {
	ID         int64   `json:"id" yaml:"id"`
	Plate      string  `json:"placa" yaml:"plate"`
	Identifier string  `json:"identificador,omitempty" yaml:"identifier,omitempty"`
	DriverID   *int64  `json:"motorista_id,omitempty" yaml:"driver_id,omitempty"`
	Active     bool    `json:"ativo" yaml:"active"`
	Driver     *Driver `json:"motorista,omitempty" yaml:"driver,omitempty"`
	CreatedAt  Time    `json:"created_at" yaml:"created_at"`
}

// DriverListResponse wraps GET /api/motoristas/listar
type DriverListResponse struct {
	Drivers []Driver `json:"motoristas"`
	Total   int      `json:"total"`
}

type Driver struct {
	ID             int64  `json:"id" yaml:"id"`
	Name           string `json:"nome" yaml:"name"`
	CPF            string `json:"cpf,omitempty" yaml:"cpf,omitempty"`
	EmployeeNumber string `json:"matricula,omitempty" yaml:"employee_number,omitempty"`
	Role           string `json:"funcao,omitempty" yaml:"role,omitempty"`
	Active         *bool  `json:"ativo,omitempty" yaml:"active,omitempty"`
}
