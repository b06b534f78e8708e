package domain

import (
	"fmt"
	"math"
	"time"
)

// priceSumTolerance es la desviación máxima admitida de yes+no respecto a 1.00.
const priceSumTolerance = 0.01

// Market representa un mercado de predicción binario del catálogo.
// Es inmutable una vez cargado: el core solo lo consulta por ID.
type Market struct {
	ID          string
	Title       string
	Description string
	Category    Category
	ImageURL    string
	Volume      float64 // volumen acumulado en R$
	YesPrice    float64 // precio de la cota SIM, en (0,1)
	NoPrice     float64 // precio de la cota NÃO, en (0,1)
	EndDate     time.Time
	History     []PricePoint
	Rules       string
}

// PricePoint es una observación del precio SIM en el tiempo.
type PricePoint struct {
	Timestamp time.Time
	Price     float64
}

// Category agrupa los mercados para el filtro del listado.
type Category string

const (
	CategoryEconomia   Category = "Economia"
	CategoryPolitica   Category = "Política"
	CategoryTecnologia Category = "Tecnologia"
	CategoryCultura    Category = "Cultura & Entretenimento"
	CategoryEsportes   Category = "Esportes"
	CategoryBrasil     Category = "Brasil"
)

// Categories lista las categorías conocidas en orden de presentación.
func Categories() []Category {
	return []Category{
		CategoryEconomia,
		CategoryPolitica,
		CategoryTecnologia,
		CategoryCultura,
		CategoryEsportes,
		CategoryBrasil,
	}
}

// Price devuelve el precio del lado pedido.
func (m Market) Price(side Side) float64 {
	if side == SideNo {
		return m.NoPrice
	}
	return m.YesPrice
}

// Probability devuelve la probabilidad implícita del lado SIM en porcentaje.
func (m Market) Probability() float64 {
	return m.YesPrice * 100
}

// Validate comprueba los invariantes del mercado: ambos precios en (0,1),
// yes+no ≈ 1 dentro de la tolerancia, y volumen no negativo.
func (m Market) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("market: missing id")
	}
	if m.YesPrice <= 0 || m.YesPrice >= 1 {
		return fmt.Errorf("market %s: yes price %.4f out of (0,1)", m.ID, m.YesPrice)
	}
	if m.NoPrice <= 0 || m.NoPrice >= 1 {
		return fmt.Errorf("market %s: no price %.4f out of (0,1)", m.ID, m.NoPrice)
	}
	if diff := math.Abs(m.YesPrice + m.NoPrice - 1); diff > priceSumTolerance {
		return fmt.Errorf("market %s: yes+no = %.4f deviates from 1.00", m.ID, m.YesPrice+m.NoPrice)
	}
	if m.Volume < 0 {
		return fmt.Errorf("market %s: negative volume %.2f", m.ID, m.Volume)
	}
	return nil
}
