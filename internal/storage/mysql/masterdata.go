package mysql

import (
	"context"
	"errors"
	"fmt"

	"mes-dashboard/internal/storage"
)

var ErrNotFound = errors.New("not found")

func (s *Storage) GetMachines(ctx context.Context) ([]storage.Machine, error) {
	const op = "storage.mysql.GetMachines"

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, type, status, is_active FROM machines ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var machines []storage.Machine
	for rows.Next() {
		var m storage.Machine
		if err := rows.Scan(&m.ID, &m.Name, &m.Type, &m.Status, &m.IsActive); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		machines = append(machines, m)
	}

	return machines, rows.Err()
}

func (s *Storage) GetActiveMachines(ctx context.Context) ([]storage.Machine, error) {
	const op = "storage.mysql.GetActiveMachines"

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, type, status, is_active FROM machines WHERE is_active = TRUE ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var machines []storage.Machine
	for rows.Next() {
		var m storage.Machine
		if err := rows.Scan(&m.ID, &m.Name, &m.Type, &m.Status, &m.IsActive); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		machines = append(machines, m)
	}

	return machines, rows.Err()
}

func (s *Storage) CreateMachine(ctx context.Context, m storage.Machine) (int64, error) {
	const op = "storage.mysql.CreateMachine"

	res, err := s.db.ExecContext(ctx, `INSERT INTO machines (name, type, status, is_active) VALUES (?, ?, ?, ?)`,
		m.Name, m.Type, m.Status, m.IsActive)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return res.LastInsertId()
}

func (s *Storage) UpdateMachine(ctx context.Context, m storage.Machine) error {
	const op = "storage.mysql.UpdateMachine"

	_, err := s.db.ExecContext(ctx, `UPDATE machines SET name = ?, type = ?, status = ?, is_active = ? WHERE id = ?`,
		m.Name, m.Type, m.Status, m.IsActive, m.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) DeleteMachine(ctx context.Context, id int64) error {
	const op = "storage.mysql.DeleteMachine"

	res, err := s.db.ExecContext(ctx, `DELETE FROM machines WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return checkAffected(res, op)
}

func (s *Storage) GetMolds(ctx context.Context) ([]storage.Mold, error) {
	const op = "storage.mysql.GetMolds"

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, product_name, cavities, status, is_active FROM molds ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var molds []storage.Mold
	for rows.Next() {
		var m storage.Mold
		if err := rows.Scan(&m.ID, &m.Name, &m.ProductName, &m.Cavities, &m.Status, &m.IsActive); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		molds = append(molds, m)
	}

	return molds, rows.Err()
}

func (s *Storage) CreateMold(ctx context.Context, m storage.Mold) (int64, error) {
	const op = "storage.mysql.CreateMold"

	res, err := s.db.ExecContext(ctx, `INSERT INTO molds (name, product_name, cavities, status, is_active) VALUES (?, ?, ?, ?, ?)`,
		m.Name, m.ProductName, m.Cavities, m.Status, m.IsActive)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return res.LastInsertId()
}

func (s *Storage) UpdateMold(ctx context.Context, m storage.Mold) error {
	const op = "storage.mysql.UpdateMold"

	_, err := s.db.ExecContext(ctx, `UPDATE molds SET name = ?, product_name = ?, cavities = ?, status = ?, is_active = ? WHERE id = ?`,
		m.Name, m.ProductName, m.Cavities, m.Status, m.IsActive, m.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) DeleteMold(ctx context.Context, id int64) error {
	const op = "storage.mysql.DeleteMold"

	res, err := s.db.ExecContext(ctx, `DELETE FROM molds WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return checkAffected(res, op)
}

func (s *Storage) GetProducts(ctx context.Context) ([]storage.Product, error) {
	const op = "storage.mysql.GetProducts"

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, code, material, is_active FROM products ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var products []storage.Product
	for rows.Next() {
		var p storage.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Code, &p.Material, &p.IsActive); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

func (s *Storage) CreateProduct(ctx context.Context, p storage.Product) (int64, error) {
	const op = "storage.mysql.CreateProduct"

	res, err := s.db.ExecContext(ctx, `INSERT INTO products (name, code, material, is_active) VALUES (?, ?, ?, ?)`,
		p.Name, p.Code, p.Material, p.IsActive)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return res.LastInsertId()
}

func (s *Storage) UpdateProduct(ctx context.Context, p storage.Product) error {
	const op = "storage.mysql.UpdateProduct"

	_, err := s.db.ExecContext(ctx, `UPDATE products SET name = ?, code = ?, material = ?, is_active = ? WHERE id = ?`,
		p.Name, p.Code, p.Material, p.IsActive, p.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) DeleteProduct(ctx context.Context, id int64) error {
	const op = "storage.mysql.DeleteProduct"

	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return checkAffected(res, op)
}

func (s *Storage) GetEmployees(ctx context.Context) ([]storage.Employee, error) {
	const op = "storage.mysql.GetEmployees"

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, role, team, is_active FROM employees ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var employees []storage.Employee
	for rows.Next() {
		var e storage.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Role, &e.Team, &e.IsActive); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		employees = append(employees, e)
	}

	return employees, rows.Err()
}

func (s *Storage) CreateEmployee(ctx context.Context, e storage.Employee) (int64, error) {
	const op = "storage.mysql.CreateEmployee"

	res, err := s.db.ExecContext(ctx, `INSERT INTO employees (name, role, team, is_active) VALUES (?, ?, ?, ?)`,
		e.Name, e.Role, e.Team, e.IsActive)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return res.LastInsertId()
}

func (s *Storage) UpdateEmployee(ctx context.Context, e storage.Employee) error {
	const op = "storage.mysql.UpdateEmployee"

	_, err := s.db.ExecContext(ctx, `UPDATE employees SET name = ?, role = ?, team = ?, is_active = ? WHERE id = ?`,
		e.Name, e.Role, e.Team, e.IsActive, e.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) DeleteEmployee(ctx context.Context, id int64) error {
	const op = "storage.mysql.DeleteEmployee"

	res, err := s.db.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return checkAffected(res, op)
}

func (s *Storage) GetDefectTypes(ctx context.Context) ([]storage.DefectType, error) {
	const op = "storage.mysql.GetDefectTypes"

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, category, is_active FROM defect_types ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var defects []storage.DefectType
	for rows.Next() {
		var d storage.DefectType
		if err := rows.Scan(&d.ID, &d.Name, &d.Category, &d.IsActive); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		defects = append(defects, d)
	}

	return defects, rows.Err()
}

func (s *Storage) CreateDefectType(ctx context.Context, d storage.DefectType) (int64, error) {
	const op = "storage.mysql.CreateDefectType"

	res, err := s.db.ExecContext(ctx, `INSERT INTO defect_types (name, category, is_active) VALUES (?, ?, ?)`,
		d.Name, d.Category, d.IsActive)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return res.LastInsertId()
}

func (s *Storage) UpdateDefectType(ctx context.Context, d storage.DefectType) error {
	const op = "storage.mysql.UpdateDefectType"

	_, err := s.db.ExecContext(ctx, `UPDATE defect_types SET name = ?, category = ?, is_active = ? WHERE id = ?`,
		d.Name, d.Category, d.IsActive, d.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) DeleteDefectType(ctx context.Context, id int64) error {
	const op = "storage.mysql.DeleteDefectType"

	res, err := s.db.ExecContext(ctx, `DELETE FROM defect_types WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return checkAffected(res, op)
}

func (s *Storage) GetTeams(ctx context.Context) ([]storage.Team, error) {
	const op = "storage.mysql.GetTeams"

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, slug, is_active FROM teams ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var teams []storage.Team
	for rows.Next() {
		var t storage.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.IsActive); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		teams = append(teams, t)
	}

	return teams, rows.Err()
}

func (s *Storage) CreateTeam(ctx context.Context, t storage.Team) (int64, error) {
	const op = "storage.mysql.CreateTeam"

	res, err := s.db.ExecContext(ctx, `INSERT INTO teams (name, slug, is_active) VALUES (?, ?, ?)`,
		t.Name, t.Slug, t.IsActive)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return res.LastInsertId()
}

func (s *Storage) UpdateTeam(ctx context.Context, t storage.Team) error {
	const op = "storage.mysql.UpdateTeam"

	_, err := s.db.ExecContext(ctx, `UPDATE teams SET name = ?, slug = ?, is_active = ? WHERE id = ?`,
		t.Name, t.Slug, t.IsActive, t.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) DeleteTeam(ctx context.Context, id int64) error {
	const op = "storage.mysql.DeleteTeam"

	res, err := s.db.ExecContext(ctx, `DELETE FROM teams WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return checkAffected(res, op)
}

func checkAffected(res interface{ RowsAffected() (int64, error) }, op string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
