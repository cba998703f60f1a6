package repository

import (
	"errors"

	"github.com/dialop/LightBnB/internal/errs"
	"github.com/dialop/LightBnB/internal/model"
	"github.com/doug-martin/goqu/v9"
	// Registers the postgres dialect ($n placeholders, double-quoted identifiers).
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
)

var dialect = goqu.Dialect("postgres")

const searchOp = "PropertyRepository.Search"

// propertyColumns is the select list shared by Search and the row scanner;
// the order must match scanProperty.
var propertyColumns = []any{
	goqu.I("properties.id"),
	goqu.I("properties.owner_id"),
	goqu.I("properties.title"),
	goqu.I("properties.description"),
	goqu.I("properties.thumbnail_photo_url"),
	goqu.I("properties.cover_photo_url"),
	goqu.I("properties.cost_per_night"),
	goqu.I("properties.street"),
	goqu.I("properties.city"),
	goqu.I("properties.province"),
	goqu.I("properties.post_code"),
	goqu.I("properties.country"),
	goqu.I("properties.parking_spaces"),
	goqu.I("properties.number_of_bathrooms"),
	goqu.I("properties.number_of_bedrooms"),
	goqu.AVG("property_reviews.rating").As("average_rating"),
}

// propertySearch collects the predicates of a search.
//
// Each predicate is a goqu expression holding its own value, so a clause
// and its bound arguments are always added together and the placeholder
// numbering is derived when the statement is rendered.
type propertySearch struct {
	where  []exp.Expression
	having []exp.Expression
}

// newPropertySearch turns opts into predicates, in the fixed order
// city, owner, price range; minimum rating goes to HAVING.
//
// Price bounds that cannot be expressed in cents yield a
// KindInvalidInput error naming the offending fields.
func newPropertySearch(opts model.PropertySearchOptions) (*propertySearch, error) {
	s := &propertySearch{}

	if opts.HasCity() {
		// Case-sensitive substring match.
		s.where = append(s.where, goqu.I("properties.city").Like("%"+*opts.City+"%"))
	}

	if opts.OwnerID != nil {
		s.where = append(s.where, goqu.I("properties.owner_id").Eq(*opts.OwnerID))
	}

	if opts.HasPriceRange() {
		low, high, err := priceRange(opts)
		if err != nil {
			return nil, err
		}
		s.where = append(s.where, goqu.I("properties.cost_per_night").Between(goqu.Range(low, high)))
	}

	if opts.MinimumRating != nil {
		s.having = append(s.having, goqu.AVG("property_reviews.rating").Gte(*opts.MinimumRating))
	}

	return s, nil
}

// priceRange converts both bounds to cents, reporting every bad bound.
func priceRange(opts model.PropertySearchOptions) (int64, int64, error) {
	var fieldErrors []errs.FieldError

	low, err := model.ToMinorUnits(*opts.MinimumPricePerNight)
	if err != nil {
		fieldErrors = append(fieldErrors, errs.FieldError{Field: "minimum_price_per_night", Error: err.Error()})
	}

	high, err := model.ToMinorUnits(*opts.MaximumPricePerNight)
	if err != nil {
		fieldErrors = append(fieldErrors, errs.FieldError{Field: "maximum_price_per_night", Error: err.Error()})
	}

	if len(fieldErrors) > 0 {
		return 0, 0, errs.NewInvalidInputError(searchOp, "Invalid price range", fieldErrors)
	}

	return low, high, nil
}

// toSQL renders the statement and its arguments in one pass.
//
// Shape:
//
//	SELECT <property columns>, AVG(property_reviews.rating) AS average_rating
//	FROM properties
//	LEFT JOIN property_reviews ON properties.id = property_reviews.property_id
//	[WHERE <p1> AND <p2> ...]
//	GROUP BY properties.id
//	[HAVING AVG(property_reviews.rating) >= $n]
//	ORDER BY properties.cost_per_night ASC
//	LIMIT $last
func (s *propertySearch) toSQL(limit int) (string, []any, error) {
	ds := dialect.From(goqu.T("properties")).
		Prepared(true).
		Select(propertyColumns...).
		LeftJoin(
			goqu.T("property_reviews"),
			goqu.On(goqu.I("properties.id").Eq(goqu.I("property_reviews.property_id"))),
		)

	if len(s.where) > 0 {
		ds = ds.Where(s.where...)
	}

	ds = ds.GroupBy(goqu.I("properties.id"))

	if len(s.having) > 0 {
		ds = ds.Having(s.having...)
	}

	return ds.
		Order(goqu.I("properties.cost_per_night").Asc()).
		Limit(uint(normalizeLimit(limit))).
		ToSQL()
}

// buildPropertySearch renders the search statement for opts and limit.
func buildPropertySearch(opts model.PropertySearchOptions, limit int) (string, []any, error) {
	s, err := newPropertySearch(opts)
	if err != nil {
		return "", nil, err
	}
	return s.toSQL(limit)
}

// isInvalidInput reports whether err is a rejected-input error.
func isInvalidInput(err error) bool {
	return errors.Is(err, errs.ErrInvalidInput)
}
